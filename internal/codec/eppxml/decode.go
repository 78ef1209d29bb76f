package eppxml

import (
	"encoding/xml"
	"fmt"
)

// wireEPP mirrors the RFC 5730 <epp> envelope closely enough for
// encoding/xml to discriminate which of greeting/response/hello arrived,
// without committing to a single rigid schema for resData/extension
// (those stay as raw XML and are decoded per-command by the router).
type wireEPP struct {
	XMLName  xml.Name      `xml:"epp"`
	Greeting *wireGreeting `xml:"greeting"`
	Response *wireResponse `xml:"response"`
	Hello    *struct{}     `xml:"hello"`
}

type wireGreeting struct {
	SvID    string `xml:"svID"`
	SvDate  string `xml:"svDate"`
	SvcMenu struct {
		ObjURI        []string `xml:"objURI"`
		SvcExtension  struct {
			ExtURI []string `xml:"extURI"`
		} `xml:"svcExtension"`
	} `xml:"svcMenu"`
	DCP xml.RawMessage `xml:"dcp"`
}

type wireResponse struct {
	Result []wireResult `xml:"result"`
	MsgQ   *struct {
		ID    string `xml:"id,attr"`
		Count int    `xml:"count,attr"`
		QDate string `xml:"qDate,attr"`
	} `xml:"msgQ"`
	ResData   xml.RawMessage   `xml:"resData"`
	Extension []xml.RawMessage `xml:"extension"`
	TrID      struct {
		ClTRID string `xml:"clTRID"`
		SvTRID string `xml:"svTRID"`
	} `xml:"trID"`
}

type wireResult struct {
	Code int    `xml:"code,attr"`
	Msg  string `xml:"msg"`
	// extValue/value elements mirror the error message verbatim for
	// diagnostics; we keep only their text content, not full structure.
	ExtValue []struct {
		Value string `xml:"value"`
	} `xml:"extValue"`
}

// Decode parses one inbound frame's payload into a neutral Document.
func Decode(payload []byte) (*Document, error) {
	var env wireEPP
	if err := xml.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("eppxml: malformed document: %w", err)
	}
	switch {
	case env.Greeting != nil:
		g := env.Greeting
		return &Document{
			Kind: DocGreeting,
			Greeting: &Greeting{
				ServerName:    g.SvID,
				ServerDate:    g.SvDate,
				ServiceURIs:   g.SvcMenu.ObjURI,
				ExtensionURIs: g.SvcMenu.SvcExtension.ExtURI,
				DCP:           string(g.DCP),
			},
		}, nil
	case env.Response != nil:
		r := env.Response
		results := make([]Result, 0, len(r.Result))
		for _, wr := range r.Result {
			res := Result{Code: wr.Code, Message: wr.Msg}
			for _, v := range wr.ExtValue {
				res.Values = append(res.Values, v.Value)
			}
			results = append(results, res)
		}
		resp := &Response{
			Results:    results,
			ClientTRID: r.TrID.ClTRID,
			ServerTRID: r.TrID.SvTRID,
			ResData:    r.ResData,
			Extension:  r.Extension,
		}
		if r.MsgQ != nil {
			resp.MessageID = r.MsgQ.ID
			resp.QueueCount = r.MsgQ.Count
			resp.QueuedAt = r.MsgQ.QDate
		}
		return &Document{Kind: DocResponse, Response: resp}, nil
	case env.Hello != nil:
		return &Document{Kind: DocHello}, nil
	default:
		return nil, fmt.Errorf("eppxml: unrecognized document: neither greeting, response, nor hello")
	}
}

// Success reports whether the first result code is in the 1000-1999
// (success, possibly pending) range, per RFC 5730 §3.
func (r *Response) Success() bool {
	if len(r.Results) == 0 {
		return false
	}
	code := r.Results[0].Code
	return code >= 1000 && code < 2000
}

// Pending reports the RFC 5730 §3 "action pending" code (1001).
func (r *Response) Pending() bool {
	return len(r.Results) > 0 && r.Results[0].Code == 1001
}
