package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/logger"
)

type contactService struct {
	email     EmailService
	inbox     string
	inboxName string
}

// NewContactService delivers contact form messages to inbox.
func NewContactService(email EmailService, inbox, inboxName string) ContactService {
	return &contactService{email: email, inbox: inbox, inboxName: inboxName}
}

func (s *contactService) Submit(ctx context.Context, msg *domain.ContactMessage) error {
	if msg == nil {
		return domain.Invalid("Message is required")
	}
	if err := validate(msg); err != nil {
		return err
	}

	subject := fmt.Sprintf("[Contact] %s", strings.TrimSpace(msg.Subject))
	plain := fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message)
	body := fmt.Sprintf("<p><strong>From:</strong> %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(msg.Name), html.EscapeString(msg.Email),
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"))

	if err := s.email.Send(ctx, s.inbox, s.inboxName, subject, plain, body); err != nil {
		logger.ErrorContext(ctx, "Failed to deliver contact message", "from", msg.Email, "error", err)
		return domain.Upstream(err)
	}
	logger.Workflow(ctx, "contact", "sent", "from", msg.Email)
	return nil
}
