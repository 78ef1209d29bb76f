package router

import (
	"testing"

	"github.com/as207960/eppproxy/internal/codec/eppxml"
	"github.com/as207960/eppproxy/internal/features"
	"github.com/as207960/eppproxy/internal/request"
)

func decodeBalanceXML(t *testing.T, doc string) *request.BalanceResult {
	t.Helper()
	parsed, err := eppxml.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("eppxml.Decode: %v", err)
	}
	feats := features.Probe(nil, plainProfile())
	out, err := decodeBalance(parsed.Response, feats)
	if err != nil {
		t.Fatalf("decodeBalance: %v", err)
	}
	result, ok := out.(*request.BalanceResult)
	if !ok {
		t.Fatalf("result type = %T", out)
	}
	return result
}

func TestDecodeVerisignBalancePercent(t *testing.T) {
	result := decodeBalanceXML(t, `<epp xmlns="urn:ietf:params:xml:ns:epp-1.0">
  <response>
    <result code="1000"><msg>Command completed successfully</msg></result>
    <resData>
      <balance:infData xmlns:balance="http://www.verisign.com/epp/balance-1.0">
        <balance:creditLimit>1000.00</balance:creditLimit>
        <balance:balance>200.00</balance:balance>
        <balance:availableCredit>800.00</balance:availableCredit>
        <balance:creditThreshold>
          <balance:percent>50</balance:percent>
        </balance:creditThreshold>
      </balance:infData>
    </resData>
    <trID><clTRID>ABC-12345</clTRID><svTRID>54322-XYZ</svTRID></trID>
  </response>
</epp>`)

	if result.Balance != "200.00" || result.Currency != "USD" {
		t.Errorf("Balance/Currency = %q/%q", result.Balance, result.Currency)
	}
	if result.CreditLimit != "1000.00" || result.AvailableCredit != "800.00" {
		t.Errorf("CreditLimit/AvailableCredit = %q/%q", result.CreditLimit, result.AvailableCredit)
	}
	if result.CreditThreshold == nil || *result.CreditThreshold != 50 {
		t.Fatalf("CreditThreshold = %v, want Percentage(50)", result.CreditThreshold)
	}
}

func TestDecodeEURidBalancePrePayment(t *testing.T) {
	result := decodeBalanceXML(t, `<epp xmlns="urn:ietf:params:xml:ns:epp-1.0" xmlns:registrarFinance="http://www.eurid.eu/xml/epp/finance-1.0">
  <response>
    <result code="1000"><msg>Command completed successfully</msg></result>
    <resData>
      <registrarFinance:infData>
        <registrarFinance:paymentMode>PRE_PAYMENT</registrarFinance:paymentMode>
        <registrarFinance:availableAmount>10000.00</registrarFinance:availableAmount>
        <registrarFinance:accountBalance>3950.00</registrarFinance:accountBalance>
      </registrarFinance:infData>
    </resData>
    <trID><clTRID>registrar-info01</clTRID><svTRID>e4fc5e12b</svTRID></trID>
  </response>
</epp>`)

	if result.Balance != "3950.00" || result.Currency != "EUR" {
		t.Errorf("Balance/Currency = %q/%q", result.Balance, result.Currency)
	}
	if result.AvailableCredit != "10000.00" {
		t.Errorf("AvailableCredit = %q, want 10000.00", result.AvailableCredit)
	}
}

func TestDecodeEURidBalancePostPaymentHasNoAvailableCredit(t *testing.T) {
	result := decodeBalanceXML(t, `<epp xmlns="urn:ietf:params:xml:ns:epp-1.0" xmlns:registrarFinance="http://www.eurid.eu/xml/epp/finance-1.0">
  <response>
    <result code="1000"><msg>Command completed successfully</msg></result>
    <resData>
      <registrarFinance:infData>
        <registrarFinance:paymentMode>POST_PAYMENT</registrarFinance:paymentMode>
        <registrarFinance:accountBalance>10000.00</registrarFinance:accountBalance>
      </registrarFinance:infData>
    </resData>
    <trID><clTRID>registrar-info02</clTRID><svTRID>e287d5d2f</svTRID></trID>
  </response>
</epp>`)

	if result.Balance != "10000.00" || result.Currency != "EUR" {
		t.Errorf("Balance/Currency = %q/%q", result.Balance, result.Currency)
	}
	if result.AvailableCredit != "" {
		t.Errorf("AvailableCredit = %q, want empty for post-payment", result.AvailableCredit)
	}
}

func TestDecodeSwitchBalance(t *testing.T) {
	result := decodeBalanceXML(t, `<epp xmlns="urn:ietf:params:xml:ns:epp-1.0">
  <response>
    <result code="1000"><msg>Command completed successfully</msg></result>
    <resData>
      <infData xmlns="urn:ietf:params:xml:ns:epp:balance-1.0">
        <balance>27.05</balance>
        <currency>CHF</currency>
      </infData>
    </resData>
    <trID><clTRID>b4e118c9</clTRID><svTRID>20200615.116639549.1185125979</svTRID></trID>
  </response>
</epp>`)

	if result.Balance != "27.05" || result.Currency != "CHF" {
		t.Errorf("Balance/Currency = %q/%q", result.Balance, result.Currency)
	}
}
