package eppxml

import "encoding/xml"

// DocKind discriminates the top-level element of an inbound document.
type DocKind int

const (
	DocUnknown DocKind = iota
	DocGreeting
	DocResponse
	DocHello
)

func (k DocKind) String() string {
	switch k {
	case DocGreeting:
		return "greeting"
	case DocResponse:
		return "response"
	case DocHello:
		return "hello"
	default:
		return "unknown"
	}
}

// Greeting is the neutral form of an inbound <greeting> (RFC 5730 §2.4).
type Greeting struct {
	ServerName    string
	ServerDate    string
	ServiceURIs   []string // declared object namespaces (svcMenu/objURI)
	ExtensionURIs []string // declared extension namespaces (svcMenu/svcExtension/extURI)
	DCP           string   // raw <dcp> block, opaque; not interpreted by the router
}

// Result is one <result code="..."> element plus its messages.
type Result struct {
	Code    int
	Message string
	Values  []string // <extValue>/<value> text content, preserved verbatim
}

// Response is the neutral form of an inbound <response>.
type Response struct {
	Results     []Result
	ClientTRID  string
	ServerTRID  string
	ResData     xml.RawMessage   // raw <resData> contents, decoded per-command by the router
	Extension   []xml.RawMessage // raw <extension> children, one per unrecognized or recognized sub-element
	MessageID   string           // <msgQ id="..."> for poll responses
	QueueCount  int
	QueuedAt    string
}

// Document is the result of decoding one inbound frame.
type Document struct {
	Kind     DocKind
	Greeting *Greeting
	Response *Response
}
