package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

// SMTP sends plain text emails through an authenticated SMTP server.
type SMTP struct {
	server   string
	port     int
	email    string
	password string
	from     string

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTP(server string, port int, email, password, from string) *SMTP {
	if from == "" {
		from = email
	}

	return &SMTP{
		server:   server,
		port:     port,
		email:    email,
		password: password,
		from:     from,

		send: smtp.SendMail,
	}
}

func (n *SMTP) Notify(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipient for %q", msg.Subject)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", n.email, n.password, n.server)
	addr := net.JoinHostPort(n.server, strconv.Itoa(n.port))
	return n.send(addr, auth, n.email, msg.To, n.format(msg))
}

func (n *SMTP) format(msg Message) []byte {
	headers := []string{
		fmt.Sprintf("From: \"Bookshelf\" <%s>", n.from),
		fmt.Sprintf("To: %s", strings.Join(msg.To, ", ")),
		fmt.Sprintf("Subject: %s", msg.Subject),
		"MIME-version: 1.0;",
		"Content-Type: text/plain; charset=\"UTF-8\";",
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + msg.Body)
}
