package render

// Op identifies the drawing primitive of one command.
type Op string

const (
	OpLine       Op = "line"
	OpDashedLine Op = "dashed_line"
	OpCircle     Op = "circle"
	OpText       Op = "text"
	OpImage      Op = "image"
)

// Role identifies what a command depicts, so adapters can pick styling
// without re-deriving layout.
type Role string

const (
	RoleRuler        Role = "ruler"
	RoleTick         Role = "tick"
	RoleTickLabel    Role = "tick_label"
	RoleBaseline     Role = "baseline"
	RoleGap          Role = "gap"
	RoleMarker       Role = "marker"
	RoleMarkerLabel  Role = "marker_label"
	RoleLegend       Role = "legend"
	RolePreviewText  Role = "preview_text"
	RolePreviewImage Role = "preview_image"
	RoleEmpty        Role = "empty"
)

// DrawCommand is one toolkit-agnostic drawing instruction. The host adapter
// executes the list in order against whatever surface it owns.
type DrawCommand struct {
	Op   Op
	Role Role

	// Line endpoints
	X1, Y1, X2, Y2 float64

	// Anchor point for circles, text and images
	X, Y float64

	Radius    float64
	Text      string
	ImagePath string
	W, H      float64
}
