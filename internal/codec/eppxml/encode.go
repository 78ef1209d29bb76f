package eppxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n"

// envelope wraps an already-built command body (produced by the router's
// per-object encoders, e.g. <domain:check>...</domain:check>) together
// with optional extension fragments and the client transaction id. The
// router never builds the <epp>/<command>/<clTRID> wrapper itself; that
// belongs to the wire codec.
type envelope struct {
	XMLName xml.Name      `xml:"epp"`
	XMLNS   string        `xml:"xmlns,attr"`
	Command *commandBlock `xml:"command"`
	Hello   *struct{}     `xml:"hello"`
	Logout  *struct{}     `xml:"logout"`
}

type commandBlock struct {
	Inner     []byte   `xml:",innerxml"`
	Extension *extBlock `xml:"extension"`
	ClTRID    string   `xml:"clTRID,omitempty"`
}

type extBlock struct {
	Inner []byte `xml:",innerxml"`
}

const eppNamespace = "urn:ietf:params:xml:ns:epp-1.0"

// EncodeCommand wraps a router-built command body and optional extension
// fragments in the standard <epp><command>...</command></epp> envelope.
func EncodeCommand(body []byte, extensions [][]byte, clTRID string) ([]byte, error) {
	cb := &commandBlock{Inner: body, ClTRID: clTRID}
	if len(extensions) > 0 {
		cb.Extension = &extBlock{Inner: bytes.Join(extensions, nil)}
	}
	env := envelope{XMLNS: eppNamespace, Command: cb}
	return marshalEnvelope(env)
}

// EncodeHello produces the greeting-request document (RFC 5730 §2.9.2.1).
func EncodeHello() ([]byte, error) {
	env := envelope{XMLNS: eppNamespace, Hello: &struct{}{}}
	return marshalEnvelope(env)
}

// EncodeLogout produces a bare <logout/> command.
func EncodeLogout(clTRID string) ([]byte, error) {
	body := []byte("<logout/>")
	cb := &commandBlock{Inner: body, ClTRID: clTRID}
	env := envelope{XMLNS: eppNamespace, Command: cb}
	return marshalEnvelope(env)
}

// LoginParams carries everything the router's login builder must feed
// into the wire codec: declared object/extension namespaces come from
// the FeatureSet, not from this package.
type LoginParams struct {
	ClientID      string
	Password      string
	NewPassword   string
	ClTRID        string
	ObjectURIs    []string
	ExtensionURIs []string
	UserAgent     *UserAgent
	// LoginSecurity gates the loginSec:loginSec extension: only sent
	// when the peer has advertised the login-security namespace in its
	// greeting (spec.md §4.4).
	LoginSecurity bool
}

// UserAgent is the optional login-security <userAgent> sub-block some
// registries require alongside client identity.
type UserAgent struct {
	ClientProduct string
	ClientVersion string
	OS            string
}

const loginSecNamespace = "urn:ietf:params:xml:ns:epp:loginSec-1.0"

// buildLoginSecurityExt emits the loginSec:loginSec extension carrying
// the user-agent triplet and the password repeated in its extension
// form, per the login-security draft (original_source's proto/login_sec.rs).
func buildLoginSecurityExt(p LoginParams) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<loginSec:loginSec xmlns:loginSec="%s">`, loginSecNamespace)
	if p.UserAgent != nil {
		buf.WriteString("<loginSec:userAgent>")
		if p.UserAgent.ClientProduct != "" {
			buf.WriteString("<loginSec:app>")
			xml.EscapeText(&buf, []byte(p.UserAgent.ClientProduct))
			buf.WriteString("</loginSec:app>")
		}
		if p.UserAgent.ClientVersion != "" {
			buf.WriteString("<loginSec:tech>")
			xml.EscapeText(&buf, []byte(p.UserAgent.ClientVersion))
			buf.WriteString("</loginSec:tech>")
		}
		if p.UserAgent.OS != "" {
			buf.WriteString("<loginSec:os>")
			xml.EscapeText(&buf, []byte(p.UserAgent.OS))
			buf.WriteString("</loginSec:os>")
		}
		buf.WriteString("</loginSec:userAgent>")
	}
	buf.WriteString("<loginSec:pw>")
	xml.EscapeText(&buf, []byte(p.Password))
	buf.WriteString("</loginSec:pw>")
	if p.NewPassword != "" {
		buf.WriteString("<loginSec:newPW>")
		xml.EscapeText(&buf, []byte(p.NewPassword))
		buf.WriteString("</loginSec:newPW>")
	}
	buf.WriteString("</loginSec:loginSec>")
	return buf.Bytes()
}

// EncodeLogin builds the <login> command body per RFC 5730 §2.9.1.1.
func EncodeLogin(p LoginParams) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("<login>")
	buf.WriteString("<clID>")
	xml.EscapeText(&buf, []byte(p.ClientID))
	buf.WriteString("</clID><pw>")
	xml.EscapeText(&buf, []byte(p.Password))
	buf.WriteString("</pw>")
	if p.NewPassword != "" {
		buf.WriteString("<newPW>")
		xml.EscapeText(&buf, []byte(p.NewPassword))
		buf.WriteString("</newPW>")
	}
	buf.WriteString(`<options><version>1.0</version><lang>en</lang></options>`)
	buf.WriteString("<svcs>")
	for _, uri := range p.ObjectURIs {
		fmt.Fprintf(&buf, "<objURI>%s</objURI>", uri)
	}
	if len(p.ExtensionURIs) > 0 {
		buf.WriteString("<svcExtension>")
		for _, uri := range p.ExtensionURIs {
			fmt.Fprintf(&buf, "<extURI>%s</extURI>", uri)
		}
		buf.WriteString("</svcExtension>")
	}
	buf.WriteString("</svcs>")
	buf.WriteString("</login>")

	cb := &commandBlock{Inner: buf.Bytes(), ClTRID: p.ClTRID}
	if p.LoginSecurity {
		cb.Extension = &extBlock{Inner: buildLoginSecurityExt(p)}
	}
	env := envelope{XMLNS: eppNamespace, Command: cb}
	return marshalEnvelope(env)
}

// EncodePollReq builds <poll op="req"/>.
func EncodePollReq(clTRID string) ([]byte, error) {
	cb := &commandBlock{Inner: []byte(`<poll op="req"/>`), ClTRID: clTRID}
	env := envelope{XMLNS: eppNamespace, Command: cb}
	return marshalEnvelope(env)
}

// EncodePollAck builds <poll op="ack" msgID="..."/>.
func EncodePollAck(msgID, clTRID string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`<poll op="ack" msgID="`)
	xml.EscapeText(&buf, []byte(msgID))
	buf.WriteString(`"/>`)
	cb := &commandBlock{Inner: buf.Bytes(), ClTRID: clTRID}
	env := envelope{XMLNS: eppNamespace, Command: cb}
	return marshalEnvelope(env)
}

func marshalEnvelope(env envelope) ([]byte, error) {
	out, err := xml.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("eppxml: encoding envelope: %w", err)
	}
	return append([]byte(xmlHeader), out...), nil
}
