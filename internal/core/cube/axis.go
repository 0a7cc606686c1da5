package cube

// Axis identifies one of the three coordinate axes
type Axis uint8

// Axis constants
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Name returns the lowercase axis letter
func (a Axis) Name() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

// AxisFromName parses an axis letter, returning false for anything else
func AxisFromName(s string) (Axis, bool) {
	switch s {
	case "x":
		return AxisX, true
	case "y":
		return AxisY, true
	case "z":
		return AxisZ, true
	}
	return 0, false
}

// swap pairs for each axis: children on opposite sides of the axis plane
var swapPairs = [3][4][2]int{
	AxisX: {{0, 4}, {1, 5}, {2, 6}, {3, 7}},
	AxisY: {{0, 2}, {1, 3}, {4, 6}, {5, 7}},
	AxisZ: {{0, 1}, {2, 3}, {4, 5}, {6, 7}},
}
