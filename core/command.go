package core

// Command tags, the first byte of a command line
const (
	TagSpeed    = 's'
	TagPosition = 'p'
)

// CommandKind identifies which shared value a command overwrites
type CommandKind uint8

const (
	CmdSetSpeed    CommandKind = 1 // Value is the step delay in 10us ticks
	CmdSetPosition CommandKind = 2 // Value is the signed target, as a bit pattern
)

// Command is one parsed command line
type Command struct {
	Kind  CommandKind
	Value uint16
}

// Position returns the signed target of a CmdSetPosition command
func (c Command) Position() int16 {
	return int16(c.Value)
}

// ParseCommand turns a completed line (terminator already stripped) into a
// Command. ok is false when the line does not start with a known tag.
//
// The numeric payload is read like atoi on a 16-bit int: a malformed payload
// yields 0 and out-of-range values saturate. A speed equal to either
// saturation value is treated as an overflow and becomes 0; a position keeps
// the saturated value.
func ParseCommand(line []byte) (cmd Command, ok bool) {
	if len(line) == 0 {
		return Command{}, false
	}

	switch line[0] {
	case TagSpeed:
		v := parseInt16(line[1:])
		if v == minInt16 || v == maxInt16 {
			v = 0
		}
		return Command{Kind: CmdSetSpeed, Value: uint16(v)}, true

	case TagPosition:
		v := parseInt16(line[1:])
		return Command{Kind: CmdSetPosition, Value: uint16(v)}, true
	}

	return Command{}, false
}

// Apply writes the command's value into the shared motion state
func (c Command) Apply(m *MotionState) {
	switch c.Kind {
	case CmdSetSpeed:
		m.SetStepDelay(c.Value)
	case CmdSetPosition:
		m.SetTargetPosition(c.Value)
	}
}

// String renders the command in wire form, without the terminator
func (c Command) String() string {
	switch c.Kind {
	case CmdSetSpeed:
		return string(rune(TagSpeed)) + utoa(uint32(c.Value))
	case CmdSetPosition:
		return string(rune(TagPosition)) + itoa(int(c.Position()))
	default:
		return ""
	}
}

// SpeedLine encodes a set-speed command line, terminator included
func SpeedLine(delay uint16) []byte {
	return []byte(Command{Kind: CmdSetSpeed, Value: delay}.String() + "\n")
}

// PositionLine encodes a set-position command line, terminator included
func PositionLine(position int16) []byte {
	return []byte(Command{Kind: CmdSetPosition, Value: uint16(position)}.String() + "\n")
}

const (
	maxInt16 = 1<<15 - 1
	minInt16 = -1 << 15
)

// parseInt16 parses a leading decimal integer the way atoi does: leading
// whitespace is skipped, one sign is accepted, parsing stops at the first
// non-digit. No digits gives 0. Results outside int16 saturate.
func parseInt16(s []byte) int16 {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}

	negative := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		negative = s[i] == '-'
		i++
	}

	// Accumulate one past the limit so -32768 is representable
	var value int32
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		value = value*10 + int32(s[i]-'0')
		if value > -minInt16 {
			value = -minInt16
		}
		i++
	}

	if negative {
		return int16(-value)
	}
	if value > maxInt16 {
		return maxInt16
	}
	return int16(value)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\f' || c == '\r'
}
