package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	PlayerName      string `json:"player_name"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string       `json:"type"`
	ProtocolVersion string       `json:"protocol_version"`
	SessionID       string       `json:"session_id"`
	Params          StudioParams `json:"params"`
	LevelsDigest    string       `json:"levels_digest"`
}

type StudioParams struct {
	DefaultResolution int        `json:"default_resolution"`
	MaxResolution     int        `json:"max_resolution"`
	UnitSize          float32    `json:"unit_size"`
	Colors            FaceColors `json:"colors"`
}

type FaceColors struct {
	Top    [3]float32 `json:"top"`
	Bottom [3]float32 `json:"bottom"`
	Front  [3]float32 `json:"front"`
	Back   [3]float32 `json:"back"`
	Right  [3]float32 `json:"right"`
	Left   [3]float32 `json:"left"`
}

// LEVELS (server -> client)
type LevelsMsg struct {
	Type            string     `json:"type"`
	ProtocolVersion string     `json:"protocol_version"`
	Levels          []LevelRef `json:"levels"`
}

type LevelRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Difficulty int    `json:"difficulty"`
	Resolution int    `json:"resolution"`
	Solved     bool   `json:"solved"`
}

// ACT (client -> server): one user intent. Op selects which fields apply.
type ActMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ActID           string `json:"act_id,omitempty"`
	Op              string `json:"op"`

	// select_level
	LevelID string `json:"level_id,omitempty"`
	// set_mode
	Mode string `json:"mode,omitempty"`
	// set_resolution
	R int `json:"r,omitempty"`
	// edit_cell / toggle_edge
	View string `json:"view,omitempty"`
	Row  int    `json:"row,omitempty"`
	Col  int    `json:"col,omitempty"`
	Tool string `json:"tool,omitempty"`
	Code uint8  `json:"code,omitempty"`
	Kind string `json:"kind,omitempty"`
	// delete_cell
	X int `json:"x,omitempty"`
	Y int `json:"y,omitempty"`
	Z int `json:"z,omitempty"`
	// save_progress / load_progress
	ProgressCode string `json:"progress_code,omitempty"`
}

// Act ops.
const (
	OpSelectLevel   = "select_level"
	OpSetMode       = "set_mode"
	OpSetResolution = "set_resolution"
	OpEditCell      = "edit_cell"
	OpToggleEdge    = "toggle_edge"
	OpDeleteCell    = "delete_cell"
	OpSaveProgress  = "save_progress"
	OpLoadProgress  = "load_progress"
)

// STATE (server -> client): the complete derived state after an accepted
// act. The render host owns everything past this contract.
type StateMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	AckFor          string `json:"ack_for,omitempty"`

	Mode    string `json:"mode"`
	LevelID string `json:"level_id,omitempty"`
	R       int    `json:"r"`

	Views       ViewTriplet  `json:"views"`
	Projections *ViewTriplet `json:"projections,omitempty"`
	Hull        [][4]int     `json:"hull"` // x, y, z, type code
	Surface     *SurfaceData `json:"surface,omitempty"`
	Wireframe   []float32    `json:"wireframe,omitempty"`
	Solved      bool         `json:"solved"`

	ProgressCode string `json:"progress_code,omitempty"`
}

type ViewTriplet struct {
	Top   ViewData `json:"top"`
	Front ViewData `json:"front"`
	Side  ViewData `json:"side"`
}

type ViewData struct {
	Cells []uint8 `json:"cells"`
	V     []uint8 `json:"v"`
	H     []uint8 `json:"h"`
}

type SurfaceData struct {
	Positions []float32 `json:"positions"`
	Normals   []float32 `json:"normals"`
	Colors    []float32 `json:"colors"`
}

// ERROR (server -> client)
type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	AckFor          string `json:"ack_for,omitempty"`
	Code            string `json:"code"`
	Message         string `json:"message"`
}
