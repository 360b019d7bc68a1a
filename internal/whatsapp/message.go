package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultWelcomeMessage greets a customer opening a product chat.
const DefaultWelcomeMessage = "আসসালামু আলাইকুম! আমি ঘরকথা থেকে পণ্য সম্পর্কে জানতে চাই।"

// DefaultOrderTemplate is the Bengali order message used when no custom
// template is configured. Placeholders are substituted verbatim.
const DefaultOrderTemplate = `আসসালামু আলাইকুম! আমি ঘরকথা থেকে অর্ডার করতে চাই।

📋 অর্ডারের বিবরণ:
{order_details}

💰 মোট: ৳{total_amount}

👤 নাম: {customer_name}
📞 ফোন: {customer_phone}
📍 ঠিকানা: {customer_address}{notes}`

// OrderLine is one item row rendered into the order message.
type OrderLine struct {
	Name     string
	Quantity int
	Price    float64
	Subtotal float64
}

// OrderMessageInput carries everything the order template can reference.
type OrderMessageInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Notes           string
	Lines           []OrderLine
	TotalAmount     float64
}

// FormatAmount renders a taka amount the way the storefront shows it:
// no trailing zeros, up to two decimal places.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).Round(2).String()
}

// RenderOrderDetails renders the per-item block of the order message.
func RenderOrderDetails(lines []OrderLine) string {
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered = append(rendered, fmt.Sprintf(
			"• %s - %d টি × ৳%s = ৳%s",
			line.Name, line.Quantity, FormatAmount(line.Price), FormatAmount(line.Subtotal),
		))
	}
	return strings.Join(rendered, "\n")
}

// RenderOrderMessage substitutes the input into the template. The
// {notes} placeholder expands to a labeled block only when notes are
// present, so the message never ends with an empty label.
func RenderOrderMessage(template string, input OrderMessageInput) string {
	if strings.TrimSpace(template) == "" {
		template = DefaultOrderTemplate
	}

	notes := ""
	if strings.TrimSpace(input.Notes) != "" {
		notes = "\n📝 নোট: " + input.Notes
	}

	replacer := strings.NewReplacer(
		"{customer_name}", input.CustomerName,
		"{customer_phone}", input.CustomerPhone,
		"{customer_address}", input.CustomerAddress,
		"{order_details}", RenderOrderDetails(input.Lines),
		"{total_amount}", FormatAmount(input.TotalAmount),
		"{notes}", notes,
	)
	return replacer.Replace(template)
}

// DeepLink builds a wa.me link that opens a chat with the message
// prefilled. The phone keeps digits only; wa.me rejects anything else.
func DeepLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", sanitizePhone(phone), url.QueryEscape(message))
}

func sanitizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}
