package server

// inMessage is a control message from a client:
//
//	{"type":"play"} {"type":"stop"} {"type":"toggle"} {"type":"reset"}
//	{"type":"forward"} {"type":"backward"} {"type":"ping"}
//	{"type":"load","text":"time,lat,lng\n..."}
//	{"type":"route","origin":"lat,lng","destination":"lat,lng"}
type inMessage struct {
	Type        string `json:"type"`
	Text        string `json:"text,omitempty"`
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
}

// outMessage is a JSON object sent to clients; "type" is one of
// hello, track, state, loaded, route, pong, error.
type outMessage map[string]interface{}
