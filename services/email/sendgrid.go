package emailsvc

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/shkolla/portal/core"
)

type sendgridService struct {
	client     *sendgrid.Client
	from       *sgmail.Email
	subjPrefix string
	logger     core.Logger
}

var _ core.EmailService = (*sendgridService)(nil)

func NewSendgridService(conf *core.Config, logger core.Logger) core.EmailService {
	return &sendgridService{
		client:     sendgrid.NewSendClient(conf.SendgridAPIKey),
		from:       sgmail.NewEmail(conf.AppName, conf.DefaultFromEmail),
		subjPrefix: "[" + conf.AppName + "] ",
		logger:     logger,
	}
}

func (svc sendgridService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		go svc.sendMessage(msg)
	}
}

func (svc sendgridService) sendMessage(msg *core.EmailMessage) {
	if len(msg.To) == 0 || msg.BodyStr == "" {
		return
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(svc.from)
	m.Subject = svc.subjPrefix + msg.Subject

	personalization := sgmail.NewPersonalization()
	for _, to := range msg.To {
		personalization.AddTos(sgmail.NewEmail(to.Name, to.Address))
	}
	m.AddPersonalizations(personalization)
	m.AddContent(sgmail.NewContent("text/plain", msg.BodyStr))

	resp, err := svc.client.Send(m)
	if err != nil {
		svc.logger.Error("sending email", errors.Wrap(err, "sending email"))
		return
	}
	if resp.StatusCode >= 300 {
		err = fmt.Errorf("sendgrid responded %d: %s", resp.StatusCode, resp.Body)
		svc.logger.Error("sending email", err)
	}
}
