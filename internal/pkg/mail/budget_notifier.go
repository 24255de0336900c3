package mail

import (
	"fmt"

	"github.com/orcahub/OrcaHub/app/models"
	"github.com/orcahub/OrcaHub/internal/pkg/env"
)

// BudgetNotifier sends budget confirmation mails over SMTP.
type BudgetNotifier struct{}

// NewBudgetNotifier creates a BudgetNotifier.
func NewBudgetNotifier() *BudgetNotifier {
	return &BudgetNotifier{}
}

func confirmationLink(budget *models.Budget, token *models.ConfirmationToken) string {
	domain := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:4040")
	return fmt.Sprintf("%s/b/%s/confirm?token=%s", domain, budget.PublicID, token.Token)
}

// SendBudgetConfirmation mails the customer the link to approve or reject
// a budget that just went out for confirmation.
func (n *BudgetNotifier) SendBudgetConfirmation(budget *models.Budget, customer *models.Customer, token *models.ConfirmationToken) error {
	subject := fmt.Sprintf("Budget %s is awaiting your approval", budget.Code)
	body := fmt.Sprintf(
		"<h2>Hello %s,</h2>"+
			"<p>Budget <strong>%s</strong> with a total of %.2f is ready for your review.</p>"+
			"<p><a href=\"%s\">Review and confirm the budget</a></p>"+
			"<p>The link is valid until %s.</p>",
		customer.Name, budget.Code, budget.Total,
		confirmationLink(budget, token),
		token.ExpiresAt.Format("02 Jan 2006 15:04"),
	)
	return SendMail(customer.Email, subject, body)
}

// SendBudgetTokenRenewal mails the customer a replacement link after the
// previous one expired.
func (n *BudgetNotifier) SendBudgetTokenRenewal(budget *models.Budget, customer *models.Customer, token *models.ConfirmationToken) error {
	subject := fmt.Sprintf("New confirmation link for budget %s", budget.Code)
	body := fmt.Sprintf(
		"<h2>Hello %s,</h2>"+
			"<p>Your previous link for budget <strong>%s</strong> expired. A new one was issued:</p>"+
			"<p><a href=\"%s\">Review and confirm the budget</a></p>"+
			"<p>The link is valid until %s.</p>",
		customer.Name, budget.Code,
		confirmationLink(budget, token),
		token.ExpiresAt.Format("02 Jan 2006 15:04"),
	)
	return SendMail(customer.Email, subject, body)
}
