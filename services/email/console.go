package emailsvc

import (
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/shkolla/portal/core"
)

var (
	// SentMessages records everything "sent" so tests can assert on it.
	SentMessages = make([]core.EmailMessage, 0)
	mu           sync.Mutex
)

type consoleService struct {
	defaultFromEmail mail.Address
	subjPrefix       string
	disableOutput    bool
}

var _ core.EmailService = (*consoleService)(nil)

func NewConsoleService(conf *core.Config) core.EmailService {
	return &consoleService{
		defaultFromEmail: mail.Address{Name: conf.AppName, Address: conf.DefaultFromEmail},
		subjPrefix:       "[" + conf.AppName + "] ",
	}
}

// NewConsoleServiceMock records messages without printing them.
func NewConsoleServiceMock(conf *core.Config) core.EmailService {
	return &consoleService{
		defaultFromEmail: mail.Address{Name: conf.AppName, Address: conf.DefaultFromEmail},
		subjPrefix:       "[" + conf.AppName + "] ",
		disableOutput:    true,
	}
}

func (svc consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		go svc.sendMessage(msg)
	}
}

func (svc consoleService) sendMessage(msg *core.EmailMessage) {
	if len(msg.To) == 0 || msg.BodyStr == "" {
		return
	}
	svc.send(*msg)
	mu.Lock()
	SentMessages = append(SentMessages, *msg)
	mu.Unlock()
}

func (svc consoleService) send(msg core.EmailMessage) {
	body := new(strings.Builder)

	_, _ = fmt.Fprintf(body, "From: %s\r\n", svc.defaultFromEmail.String())
	_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(body, "Subject: %s\r\n", svc.subjPrefix+msg.Subject)
	_, _ = fmt.Fprintf(body, "To: %s\r\n", svc.joinAddresses(msg.To))
	_, _ = fmt.Fprint(body, "\r\n")
	_, _ = fmt.Fprintf(body, "%s\r\n", msg.BodyStr)

	if !svc.disableOutput {
		log.Println(body.String())
	}
}

func (svc consoleService) joinAddresses(addrs []mail.Address) string {
	strs := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		strs = append(strs, addr.String())
	}
	return strings.Join(strs, ", ")
}
