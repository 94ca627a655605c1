package mail

import (
	"context"
	"net/smtp"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPSenderBuildsMessage(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", "587", "user", "pass", "noreply@example.com")

	var gotAddr string
	var gotTo []string
	var gotBody string
	s.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotBody = addr, to, string(msg)
		return nil
	}

	err := s.Send(context.Background(), Message{To: "ann@example.com", Subject: "Hi", Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"ann@example.com"}, gotTo)
	assert.True(t, strings.HasPrefix(gotBody, "From: noreply@example.com\r\n"))
	assert.Contains(t, gotBody, "Subject: Hi\r\n")
	assert.Contains(t, gotBody, "text/plain")
	assert.True(t, strings.HasSuffix(gotBody, "hello"))
}

type fakeSES struct {
	input *sesv2.SendEmailInput
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	return &sesv2.SendEmailOutput{}, nil
}

func TestSESSenderSend(t *testing.T) {
	client := &fakeSES{}
	s := &SESSender{client: client, from: "Baby Tracker <noreply@example.com>"}

	err := s.Send(context.Background(), Message{To: "ann@example.com", Subject: "Invite", HTML: "<p>x</p>", Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Baby Tracker <noreply@example.com>", *client.input.FromEmailAddress)
	assert.Equal(t, []string{"ann@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "Invite", *client.input.Content.Simple.Subject.Data)
	assert.Equal(t, "<p>x</p>", *client.input.Content.Simple.Body.Html.Data)
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, NewLogSender(nil).Send(context.Background(), Message{To: "a@b.c"}))
}
