// Package pb holds the Go types exchanged across the EppProxy gRPC
// service defined in api/eppproxy.proto. In a repo with network access
// to run protoc these would be generated by protoc-gen-go and
// protoc-gen-go-grpc (see the //go:generate directive in
// internal/rpcapi/doc.go); they are hand-authored here, field-for-field
// matched to the .proto messages, because no protoc toolchain is
// available in this environment. internal/rpcapi/codec.go registers a
// JSON wire codec for these types rather than requiring the protobuf
// wire format the generated types would normally carry, so the service
// still runs over a real grpc.Server/ServiceDesc without depending on
// generated proto.Message implementations.
package pb

import "google.golang.org/protobuf/types/known/timestamppb"

type ErrorDetail struct {
	Kind          string `json:"kind,omitempty"`
	Message       string `json:"message,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
	Retriable     bool   `json:"retriable,omitempty"`
}

type DomainCheckRequest struct {
	RegistryID string   `json:"registry_id"`
	Names      []string `json:"names"`
}

type DomainAvailability struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type DomainCheckResponse struct {
	Error   *ErrorDetail          `json:"error,omitempty"`
	Domains []DomainAvailability  `json:"domains,omitempty"`
}

type DomainInfoRequest struct {
	RegistryID string `json:"registry_id"`
	Name       string `json:"name"`
	AuthInfo   string `json:"auth_info,omitempty"`
	HostsForm  string `json:"hosts_form,omitempty"`
}

type DomainContact struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type DomainInfoResponse struct {
	Error       *ErrorDetail    `json:"error,omitempty"`
	Name        string          `json:"name"`
	ROID        string          `json:"roid"`
	Status      []string        `json:"status,omitempty"`
	Registrant  string          `json:"registrant"`
	Contacts    []DomainContact `json:"contacts,omitempty"`
	Nameservers []string        `json:"nameservers,omitempty"`
	Hosts       []string        `json:"hosts,omitempty"`
	ClID        string          `json:"cl_id"`
	CrID        string          `json:"cr_id"`
	CrDate      *timestamppb.Timestamp       `json:"cr_date"`
	UpID        string          `json:"up_id,omitempty"`
	UpDate      *timestamppb.Timestamp       `json:"up_date,omitempty"`
	ExDate      *timestamppb.Timestamp       `json:"ex_date"`
	TrDate      *timestamppb.Timestamp       `json:"tr_date,omitempty"`
	AuthInfo    string          `json:"auth_info,omitempty"`
}

type DomainCreateRequest struct {
	RegistryID  string          `json:"registry_id"`
	Name        string          `json:"name"`
	Period      int32           `json:"period"`
	Registrant  string          `json:"registrant"`
	Contacts    []DomainContact `json:"contacts,omitempty"`
	Nameservers []string        `json:"nameservers,omitempty"`
	AuthInfo    string          `json:"auth_info,omitempty"`
}

type DomainCreateResponse struct {
	Error  *ErrorDetail `json:"error,omitempty"`
	Name   string       `json:"name"`
	CrDate *timestamppb.Timestamp    `json:"cr_date"`
	ExDate *timestamppb.Timestamp    `json:"ex_date"`
}

type DomainRenewRequest struct {
	RegistryID     string    `json:"registry_id"`
	Name           string    `json:"name"`
	CurrentExpiry  *timestamppb.Timestamp `json:"current_expiry"`
	Period         int32     `json:"period"`
}

type DomainRenewResponse struct {
	Error  *ErrorDetail `json:"error,omitempty"`
	ExDate *timestamppb.Timestamp    `json:"ex_date"`
}

type DomainDeleteRequest struct {
	RegistryID string `json:"registry_id"`
	Name       string `json:"name"`
}

type DomainDeleteResponse struct {
	Error *ErrorDetail `json:"error,omitempty"`
}

type HostCheckRequest struct {
	RegistryID string   `json:"registry_id"`
	Names      []string `json:"names"`
}

type HostAvailability struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type HostCheckResponse struct {
	Error *ErrorDetail       `json:"error,omitempty"`
	Hosts []HostAvailability `json:"hosts,omitempty"`
}

type HostInfoRequest struct {
	RegistryID string `json:"registry_id"`
	Name       string `json:"name"`
}

type HostInfoResponse struct {
	Error     *ErrorDetail `json:"error,omitempty"`
	Name      string       `json:"name"`
	ROID      string       `json:"roid"`
	Status    []string     `json:"status,omitempty"`
	Addresses []string     `json:"addresses,omitempty"`
	ClID      string       `json:"cl_id"`
	CrID      string       `json:"cr_id"`
	CrDate    *timestamppb.Timestamp    `json:"cr_date"`
	UpID      string       `json:"up_id,omitempty"`
	UpDate    *timestamppb.Timestamp    `json:"up_date,omitempty"`
	TrDate    *timestamppb.Timestamp    `json:"tr_date,omitempty"`
}

type ContactCheckRequest struct {
	RegistryID string   `json:"registry_id"`
	IDs        []string `json:"ids"`
}

type ContactAvailability struct {
	ID        string `json:"id"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type ContactCheckResponse struct {
	Error    *ErrorDetail          `json:"error,omitempty"`
	Contacts []ContactAvailability `json:"contacts,omitempty"`
}

type ContactInfoRequest struct {
	RegistryID string `json:"registry_id"`
	ID         string `json:"id"`
	AuthInfo   string `json:"auth_info,omitempty"`
}

type PostalInfo struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Org         string   `json:"org,omitempty"`
	Street      []string `json:"street,omitempty"`
	City        string   `json:"city"`
	Province    string   `json:"province,omitempty"`
	PostalCode  string   `json:"postal_code,omitempty"`
	CountryCode string   `json:"country_code"`
}

type ContactInfoResponse struct {
	Error    *ErrorDetail `json:"error,omitempty"`
	ID       string       `json:"id"`
	ROID     string       `json:"roid"`
	Status   []string     `json:"status,omitempty"`
	Postal   []PostalInfo `json:"postal,omitempty"`
	Voice    string       `json:"voice,omitempty"`
	Fax      string       `json:"fax,omitempty"`
	Email    string       `json:"email"`
	ClID     string       `json:"cl_id"`
	CrID     string       `json:"cr_id"`
	CrDate   *timestamppb.Timestamp    `json:"cr_date"`
	UpID     string       `json:"up_id,omitempty"`
	UpDate   *timestamppb.Timestamp    `json:"up_date,omitempty"`
	TrDate   *timestamppb.Timestamp    `json:"tr_date,omitempty"`
	AuthInfo string       `json:"auth_info,omitempty"`
}

type PollRequest struct {
	RegistryID string `json:"registry_id"`
}

type PollResponse struct {
	Error      *ErrorDetail `json:"error,omitempty"`
	Empty      bool         `json:"empty"`
	MessageID  string       `json:"message_id,omitempty"`
	EnqueuedAt *timestamppb.Timestamp    `json:"enqueued_at,omitempty"`
	Message    string       `json:"message,omitempty"`
	QueueDepth int32        `json:"queue_depth"`
	Data       interface{}  `json:"data,omitempty"`
}

type PollAckRequest struct {
	RegistryID string `json:"registry_id"`
	MessageID  string `json:"message_id"`
}

type PollAckResponse struct {
	Error      *ErrorDetail `json:"error,omitempty"`
	QueueDepth int32        `json:"queue_depth"`
	NextID     string       `json:"next_id,omitempty"`
}

type EventsRequest struct {
	RegistryID string `json:"registry_id"`
}

// ExecuteRequest carries any request.Kind not given a dedicated RPC.
// Params is the matching *Params struct from internal/request, passed
// through the JSON codec without a fixed schema (see the Any field in
// the .proto; our hand-rolled codec represents it as raw JSON instead).
type ExecuteRequest struct {
	RegistryID string      `json:"registry_id"`
	Kind       string      `json:"kind"`
	Params     interface{} `json:"params,omitempty"`
}

type ExecuteResponse struct {
	Error       *ErrorDetail `json:"error,omitempty"`
	Result      interface{}  `json:"result,omitempty"`
	Pending     bool         `json:"pending,omitempty"`
	ExtraValues []string     `json:"extra_values,omitempty"`
}
