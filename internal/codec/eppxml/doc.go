// Package eppxml implements C2's EPP-XML dialect: encoding neutral
// commands into RFC 5730 documents and decoding inbound greeting/
// response documents back into a neutral intermediate tree. The
// intermediate types mirror the teacher's "one struct per wire shape"
// convention from entry.Entry, generalized from a binary ingest record
// to an XML element tree built on encoding/xml.
package eppxml
