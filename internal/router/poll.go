package router

import (
	"encoding/xml"
	"fmt"

	"github.com/as207960/eppproxy/internal/codec/eppxml"
	"github.com/as207960/eppproxy/internal/config"
	"github.com/as207960/eppproxy/internal/epperr"
	"github.com/as207960/eppproxy/internal/features"
	"github.com/as207960/eppproxy/internal/request"
)

const (
	lowBalanceNamespace  = "http://www.verisign.com/epp/lowbalance-poll-1.0"
	nominetPollNamespace = "http://www.nominet.org.uk/epp/xml/std-notifications-1.2"
	eurIDFinanceNS       = "http://www.eurid.eu/xml/epp/finance-1.0"
	maintenanceNS03      = "urn:ietf:params:xml:ns:epp:maintenance-0.3"
	personalConsentNS    = "http://www.nominet.org.uk/epp/xml/personal-1.0"
)

func init() {
	register(request.KindPoll, buildPollReq, decodePollResult)
	register(request.KindPollAck, buildPollAck, decodePollAckResult)
}

func buildPollReq(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	return []byte(`<poll op="req"/>`), nil, nil
}

func buildPollAck(params interface{}, feats *features.FeatureSet, profile *config.RegistryProfile) ([]byte, [][]byte, error) {
	p, ok := params.(*request.PollAckParams)
	if !ok {
		return nil, nil, epperr.Input("poll ack requires PollAckParams")
	}
	return []byte(fmt.Sprintf(`<poll op="ack" msgID="%s"/>`, xmlEscape(p.MessageID))), nil, nil
}

// decodePollResult handles the reply to an explicit poll request: either
// 1300 (queue empty) or 1301 with a message body, which is structurally
// identical to the unsolicited path so both funnel through
// decodePollMessage.
func decodePollResult(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	if len(resp.Results) > 0 && resp.Results[0].Code == 1300 {
		return &request.PollResult{Empty: true}, nil
	}
	return decodePollMessage(resp, feats)
}

func decodePollAckResult(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	return &request.PollAckResult{
		QueueDepth: resp.QueueCount,
		NextID:     resp.MessageID,
	}, nil
}

// decodePollMessage builds the neutral poll payload for any response
// whose <msgQ> is present, whether it arrived as the reply to an
// explicit poll request or unsolicited on an otherwise-idle connection
// (spec.md §4.5, §4.6 Poll). It tries each registry-specific
// notification extension it knows in a fixed order, whatever the
// feature set advertises; an unrecognized body still yields the
// envelope-level text.
func decodePollMessage(resp *eppxml.Response, feats *features.FeatureSet) (interface{}, error) {
	out := &request.PollResult{
		MessageID:  resp.MessageID,
		QueueDepth: resp.QueueCount,
	}
	if len(resp.Results) > 0 {
		out.Message = resp.Results[0].Message
	}
	out.EnqueuedAt = parseEPPDate(resp.QueuedAt)

	if ext, ok := findExtension(resp.Extension, rgpNamespace); ok {
		if n, err := decodeRGPStateChange(ext); err == nil {
			out.Data.RGPStateChange = n
			return out, nil
		}
	}
	if ext, ok := findExtension(resp.Extension, lowBalanceNamespace); ok {
		if n, err := decodeLowBalance(ext); err == nil {
			out.Data.LowBalance = n
			return out, nil
		}
	}
	if ext, ok := findExtension(resp.Extension, nominetPollNamespace); ok {
		if n, err := decodeNominetPoll(ext); err == nil {
			out.Data.NominetChange = n
			return out, nil
		}
	}
	if ext, ok := findExtension(resp.Extension, eurIDFinanceNS); ok {
		if n, err := decodeEURidPoll(ext); err == nil {
			out.Data.EURidEvent = n
			return out, nil
		}
	}
	if ext, ok := findExtension(resp.Extension, maintenanceNS03); ok {
		if n, err := decodeMaintenancePoll(ext); err == nil {
			out.Data.Maintenance = n
			return out, nil
		}
	}
	if ext, ok := findExtension(resp.Extension, personalConsentNS); ok {
		if n, err := decodePersonalConsentPoll(ext); err == nil {
			out.Data.PersonalRegConsent = n
			return out, nil
		}
	}
	return out, nil
}

type wireRGPPollData struct {
	Name string `xml:"name"`
	RgpStatus struct {
		S string `xml:"s,attr"`
	} `xml:"rgpStatus"`
}

func decodeRGPStateChange(ext xml.RawMessage) (*request.RGPStateChangeNotice, error) {
	var data wireRGPPollData
	if err := xml.Unmarshal(ext, &data); err != nil {
		return nil, err
	}
	return &request.RGPStateChangeNotice{Domain: data.Name, State: data.RgpStatus.S}, nil
}

type wireLowBalancePollData struct {
	RegistrarCredit string `xml:"registrarCreditLimit"`
	Threshold       string `xml:"creditThreshold"`
	AvailableCredit string `xml:"availableCredit"`
}

func decodeLowBalance(ext xml.RawMessage) (*request.LowBalanceNotice, error) {
	var data wireLowBalancePollData
	if err := xml.Unmarshal(ext, &data); err != nil {
		return nil, err
	}
	return &request.LowBalanceNotice{
		RegistrarCredit: data.RegistrarCredit,
		Threshold:       data.Threshold,
		AvailableCredit: data.AvailableCredit,
	}, nil
}

type wireNominetPollData struct {
	XMLName xml.Name
	Domain  string `xml:"domainName"`
	Detail  string `xml:",innerxml"`
}

func decodeNominetPoll(ext xml.RawMessage) (*request.NominetPollNotice, error) {
	var data wireNominetPollData
	if err := xml.Unmarshal(ext, &data); err != nil {
		return nil, err
	}
	return &request.NominetPollNotice{Kind: data.XMLName.Local, Domain: data.Domain, Detail: data.Detail}, nil
}

type wireEURidPollData struct {
	XMLName xml.Name
	Domain  string `xml:"domainName"`
	Detail  string `xml:",innerxml"`
}

func decodeEURidPoll(ext xml.RawMessage) (*request.EURidPollNotice, error) {
	var data wireEURidPollData
	if err := xml.Unmarshal(ext, &data); err != nil {
		return nil, err
	}
	return &request.EURidPollNotice{Kind: data.XMLName.Local, Domain: data.Domain, Detail: data.Detail}, nil
}

type wireMaintenancePollData struct {
	ID          string `xml:"id"`
	Environment string `xml:"environment"`
	Start       string `xml:"start"`
	End         string `xml:"end"`
	Detail      string `xml:"description"`
}

func decodeMaintenancePoll(ext xml.RawMessage) (*request.MaintenanceNotice, error) {
	var data wireMaintenancePollData
	if err := xml.Unmarshal(ext, &data); err != nil {
		return nil, err
	}
	return &request.MaintenanceNotice{
		ID:          data.ID,
		Environment: data.Environment,
		Start:       parseEPPDate(data.Start),
		End:         parseEPPDate(data.End),
		Detail:      data.Detail,
	}, nil
}

type wirePersonalConsentPollData struct {
	ContactID string `xml:"contactID"`
	Granted   bool   `xml:"granted"`
}

func decodePersonalConsentPoll(ext xml.RawMessage) (*request.PersonalRegConsentNotice, error) {
	var data wirePersonalConsentPollData
	if err := xml.Unmarshal(ext, &data); err != nil {
		return nil, err
	}
	return &request.PersonalRegConsentNotice{ContactID: data.ContactID, Granted: data.Granted}, nil
}
