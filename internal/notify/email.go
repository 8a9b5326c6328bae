package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/smtp"

	"github.com/SergeyBogomolovv/esim-order-service/internal/config"
	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/jordan-wright/email"
)

// SendFunc отправка готового письма, в тестах подменяется
type SendFunc func(e *email.Email) error

type EmailNotifier struct {
	logger  *slog.Logger
	from    string
	send    SendFunc
	enabled bool
}

var activatedTmpl = template.Must(template.New("activated").Parse(`<p>Your eSIM for order {{.OrderID}} is ready.</p>
<p>ICCID: {{.ICCID}}</p>
{{if .QRCodeURL}}<p><img src="{{.QRCodeURL}}" alt="QR code"></p>{{end}}
{{if .LPA}}<p>SM-DP+ address: {{.LPA}}<br>Activation code: {{.MatchingID}}</p>{{end}}
{{if .AppleURL}}<p><a href="{{.AppleURL}}">Install on iPhone</a></p>{{end}}`))

func NewEmailNotifier(logger *slog.Logger, cfg config.SMTP) *EmailNotifier {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	auth := smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	return NewEmailNotifierWithSender(logger, cfg.From, cfg.Enabled(), func(e *email.Email) error {
		return e.Send(addr, auth)
	})
}

func NewEmailNotifierWithSender(logger *slog.Logger, from string, enabled bool, send SendFunc) *EmailNotifier {
	return &EmailNotifier{
		logger:  logger.With(slog.String("service", "notify")),
		from:    from,
		send:    send,
		enabled: enabled,
	}
}

// OrderActivated письмо с данными для установки. Без SMTP ничего не делает.
func (n *EmailNotifier) OrderActivated(ctx context.Context, order entities.Order) error {
	if !n.enabled {
		n.logger.Debug("smtp disabled, activation email skipped", slog.String("order_id", order.OrderID))
		return nil
	}
	if order.CustomerEmail == "" {
		return nil
	}

	var body bytes.Buffer
	err := activatedTmpl.Execute(&body, map[string]string{
		"OrderID":    order.OrderID,
		"ICCID":      order.ICCID,
		"QRCodeURL":  order.Provisioning.QRCodeURL,
		"LPA":        order.Provisioning.LPA,
		"MatchingID": order.Provisioning.MatchingID,
		"AppleURL":   order.Provisioning.DirectAppleInstallationURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	e := email.NewEmail()
	e.From = n.from
	e.To = []string{order.CustomerEmail}
	e.Subject = fmt.Sprintf("Your eSIM is ready (order %s)", order.OrderID)
	e.HTML = body.Bytes()
	e.Text = []byte(fmt.Sprintf("Your eSIM for order %s is ready. ICCID: %s. Activation code: %s",
		order.OrderID, order.ICCID, order.Provisioning.QRCode))

	if err := n.send(e); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	n.logger.Info("activation email sent", slog.String("order_id", order.OrderID))
	return nil
}
