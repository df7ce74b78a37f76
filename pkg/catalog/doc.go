// Package catalog loads vendor rule catalogs and builds the immutable
// classification state from them: the component taxonomy, the sealed
// pattern registry and one table provider per vendor.
//
// A catalog is one YAML file per vendor:
//
//	owner: ti
//	name: Texas Instruments
//	priority: 10
//	types:
//	  - name: TI_LITTLE_LOGIC
//	    refines: LOGIC_IC
//	patterns:
//	  - type: TI_LITTLE_LOGIC
//	    expr: ^SN74[A-Z]*1G[0-9]+
//	series:
//	  rules:
//	    - pattern: ^(SN74[A-Z]+)
//	  families:
//	    - name: "74"
//	      members: [SN74LS, SN74HC, SN74LVC]
//	packages:
//	  strip: [R]
//	  suffixes: {N: PDIP, D: SOIC}
//
// Default vendor catalogs are embedded in the binary; see Default.
package catalog
