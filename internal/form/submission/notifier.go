// internal/form/submission/notifier.go
package submission

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"intake-service/internal/common/logger"
	"intake-service/internal/models"
)

// EmailSender is satisfied by the SES client wrapper.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// Notifier sends the confirmation email after a successful submission.
// Delivery is best-effort; failures are logged.
type Notifier struct {
	sender EmailSender
	from   string
	log    logger.Logger
}

func NewNotifier(sender EmailSender, from string, log logger.Logger) *Notifier {
	return &Notifier{
		sender: sender,
		from:   from,
		log:    log.WithFields(map[string]interface{}{"component": "submission-notifier"}),
	}
}

// SendConfirmation emails the applicant their reference ID.
func (n *Notifier) SendConfirmation(ctx context.Context, sub *models.Submission) {
	subject := fmt.Sprintf("Application received: %s", sub.ReferenceID)
	body := fmt.Sprintf(
		"Your application has been received.\n\nReference: %s\nSubmitted: %s\n\nKeep this reference for any follow-up.",
		sub.ReferenceID,
		sub.SubmittedAt.Format("Jan 2, 2006"),
	)

	_, err := n.sender.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.from),
		Destination: &types.Destination{
			ToAddresses: []string{sub.Draft.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		n.log.WithError(err).Warn("Confirmation email failed", map[string]interface{}{
			"reference_id": sub.ReferenceID,
		})
		return
	}

	n.log.Info("Confirmation email sent", map[string]interface{}{
		"reference_id": sub.ReferenceID,
	})
}
