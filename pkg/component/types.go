package component

import "strings"

// Type identifies a component category.
type Type string

// Built-in base categories.
const (
	IC         Type = "IC"
	Capacitor  Type = "CAPACITOR"
	Connector  Type = "CONNECTOR"
	Resistor   Type = "RESISTOR"
	Inductor   Type = "INDUCTOR"
	Diode      Type = "DIODE"
	Transistor Type = "TRANSISTOR"
	Crystal    Type = "CRYSTAL"
	Module     Type = "MODULE"
	Unknown    Type = "UNKNOWN"
)

// Built-in refinements.
const (
	LogicIC               Type = "LOGIC_IC"
	Memory                Type = "MEMORY"
	Microcontroller       Type = "MICROCONTROLLER"
	MotorDriver           Type = "MOTOR_DRIVER"
	PowerIC               Type = "POWER_IC"
	AudioIC               Type = "AUDIO_IC"
	CapacitorCeramic      Type = "CAPACITOR_CERAMIC"
	CapacitorElectrolytic Type = "CAPACITOR_ELECTROLYTIC"
)

// builtinBases lists the base categories every taxonomy starts with.
var builtinBases = []Type{
	IC, Capacitor, Connector, Resistor, Inductor,
	Diode, Transistor, Crystal, Module, Unknown,
}

// builtinRefinements lists the refinements every taxonomy starts with,
// in dependency order.
var builtinRefinements = []struct {
	Type   Type
	Parent Type
}{
	{LogicIC, IC},
	{Memory, IC},
	{Microcontroller, IC},
	{MotorDriver, IC},
	{PowerIC, IC},
	{AudioIC, IC},
	{CapacitorCeramic, Capacitor},
	{CapacitorElectrolytic, Capacitor},
}

// String returns the type name.
func (t Type) String() string {
	return string(t)
}

// Normalize converts a free-form type name ("capacitor-ceramic",
// "Logic IC") into canonical form ("CAPACITOR_CERAMIC", "LOGIC_IC").
func Normalize(s string) Type {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '-', ' ', '.':
			return '_'
		}
		return r
	}, s)
	return Type(strings.ToUpper(s))
}
