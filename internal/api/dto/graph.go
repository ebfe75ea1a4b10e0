package dto

type GraphNodeResponse struct {
	ID   string  `json:"id"`
	Name string  `json:"name,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type GraphResponse struct {
	NodeCount int                 `json:"node_count"`
	EdgeCount int                 `json:"edge_count"`
	Nodes     []GraphNodeResponse `json:"nodes"`
}

type PathResponse struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Found    bool     `json:"found"`
	Route    []string `json:"route,omitempty"`
	Distance float64  `json:"distance"`
	Cached   bool     `json:"cached"`
}

type FlowResponse struct {
	Source  string `json:"source"`
	Sink    string `json:"sink"`
	MaxFlow int    `json:"max_flow"`
}
