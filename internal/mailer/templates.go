package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// PurchaseEmailItem is one row of the itemized table.
type PurchaseEmailItem struct {
	Name      string
	Quantity  int
	Price     int64 // minor units
	LineTotal int64
}

type PurchaseEmailData struct {
	StoreName    string
	OrderID      string
	OrderDate    string
	Items        []PurchaseEmailItem
	Total        int64
	Currency     string // ISO 4217, upper case
	ReceiverName string
	Email        string
	AddressLines []string
}

var moneyFuncs = template.FuncMap{
	"money": func(v int64) string {
		return fmt.Sprintf("%d.%02d", v/100, v%100)
	},
	"upper": strings.ToUpper,
}

// purchaseTemplate is deliberately self-contained: inline styles only, no
// remote assets, so it renders the same in every mail client.
var purchaseTemplate = template.Must(template.New("purchase").Funcs(moneyFuncs).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222; margin: 0; padding: 24px;">
  <h2 style="margin: 0 0 4px 0;">{{.StoreName}} - order confirmation</h2>
  <p style="margin: 0 0 16px 0;">Order <strong>{{.OrderID}}</strong> · {{.OrderDate}}</p>

  <table style="border-collapse: collapse; width: 100%; max-width: 560px;">
    <tr style="background: #f4f4f4;">
      <th style="text-align: left; padding: 8px; border-bottom: 1px solid #ddd;">Item</th>
      <th style="text-align: right; padding: 8px; border-bottom: 1px solid #ddd;">Qty</th>
      <th style="text-align: right; padding: 8px; border-bottom: 1px solid #ddd;">Price</th>
      <th style="text-align: right; padding: 8px; border-bottom: 1px solid #ddd;">Total</th>
    </tr>
    {{range .Items}}
    <tr>
      <td style="padding: 8px; border-bottom: 1px solid #eee;">{{.Name}}</td>
      <td style="text-align: right; padding: 8px; border-bottom: 1px solid #eee;">{{.Quantity}}</td>
      <td style="text-align: right; padding: 8px; border-bottom: 1px solid #eee;">{{money .Price}}</td>
      <td style="text-align: right; padding: 8px; border-bottom: 1px solid #eee;">{{money .LineTotal}}</td>
    </tr>
    {{end}}
    <tr>
      <td colspan="3" style="text-align: right; padding: 8px;"><strong>Order total</strong></td>
      <td style="text-align: right; padding: 8px;"><strong>{{money .Total}} {{upper .Currency}}</strong></td>
    </tr>
  </table>

  <h3 style="margin: 24px 0 4px 0;">Delivery</h3>
  <p style="margin: 0;">
    {{.ReceiverName}}<br>
    {{range .AddressLines}}{{.}}<br>{{end}}
    {{.Email}}
  </p>
</body>
</html>
`))

// RenderPurchaseEmail renders the order-confirmation email body.
func RenderPurchaseEmail(data PurchaseEmailData) (string, error) {
	var buf bytes.Buffer
	if err := purchaseTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render purchase email: %w", err)
	}
	return buf.String(), nil
}
