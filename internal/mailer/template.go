package mailer

import (
	"bytes"
	"html/template"
	"time"

	"fundraiser-store/internal/domain"
)

var receiptTmpl = template.Must(template.New("receipt").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #333;">Thanks for your DCDC Fundraiser order!</h1>

  <div style="background-color: #f7f7f7; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <p><strong>Order ID:</strong> {{.OrderID}}</p>
    <p><strong>Order Date:</strong> {{.Date}}</p>
    <p><strong>Dancer's Name:</strong> {{.Customer.DancerName}}</p>
  </div>

  <h2 style="color: #444;">Order Summary:</h2>
  {{range .Lines}}
  <div style="border-bottom: 1px solid #eee; padding: 10px 0;">
    <h3 style="margin: 0; color: #333;">{{.Name}}</h3>
    {{if .JerseyName}}<div style="color: #666;">Jersey name: {{.JerseyName}}</div>{{end}}
    <div style="color: #666; margin: 5px 0;">
      {{range .Sizes}}<div>{{.Size}}: {{.Quantity}}</div>{{end}}
    </div>
    <p style="margin: 5px 0; font-weight: bold; color: #333;">${{.Subtotal}}</p>
  </div>
  {{end}}

  <div style="background-color: #f7f7f7; padding: 15px; border-radius: 5px; margin-top: 20px;">
    <h3 style="margin: 0; color: #333;">Total: ${{.Total}}</h3>
  </div>

  <div style="margin-top: 30px; color: #666;">
    <h3 style="color: #333;">Customer Information</h3>
    <p><strong>Name:</strong> {{.Customer.FirstName}} {{.Customer.LastName}}</p>
    <p><strong>Email:</strong> {{.Customer.Email}}</p>
    <p><strong>Phone:</strong> {{.Customer.Phone}}</p>
  </div>

  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666;">
    <p>Thank you for supporting DCDC!</p>
    <p>If you have any questions about your order, please contact us.</p>
  </div>
</div>
`))

type receiptLine struct {
	Name       string
	JerseyName string
	Sizes      []domain.SizeQuantity
	Subtotal   string
}

type receiptView struct {
	OrderID  string
	Date     string
	Customer domain.CustomerInfo
	Lines    []receiptLine
	Total    string
}

// BuildConfirmationBody renders the HTML receipt. Line subtotals are
// recomputed from price and size quantities.
func BuildConfirmationBody(req ConfirmationRequest, date time.Time) (string, error) {
	view := receiptView{
		OrderID:  req.OrderID,
		Date:     date.Format("1/2/2006"),
		Customer: req.CustomerInfo,
		Total:    req.TotalPrice.StringFixed(2),
	}
	for _, line := range req.CartItems {
		view.Lines = append(view.Lines, receiptLine{
			Name:       line.ProductName,
			JerseyName: line.JerseyName,
			Sizes:      line.Sizes,
			Subtotal:   line.ItemTotal().StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
