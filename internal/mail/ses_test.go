package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *ses.SendEmailInput
	out   *ses.SendEmailOutput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	return f.out, f.err
}

func TestSESSender_Send(t *testing.T) {
	fake := &fakeSES{out: &ses.SendEmailOutput{MessageId: aws.String("msg-1")}}
	s := NewSESSender(fake)

	id, err := s.Send(context.Background(), Message{
		Source:  "Jane <noreply@example.com>",
		To:      []string{"owner@example.com"},
		ReplyTo: []string{"ada@example.com"},
		Subject: "subject",
		Body:    "body",
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)

	in := fake.input
	require.NotNil(t, in)
	assert.Equal(t, "Jane <noreply@example.com>", aws.ToString(in.Source))
	assert.Equal(t, []string{"owner@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, []string{"ada@example.com"}, in.ReplyToAddresses)
	assert.Equal(t, "subject", aws.ToString(in.Message.Subject.Data))
	assert.Equal(t, "body", aws.ToString(in.Message.Body.Text.Data))
	assert.Nil(t, in.Message.Body.Html)
}

func TestSESSender_Send_NoReplyTo(t *testing.T) {
	fake := &fakeSES{out: &ses.SendEmailOutput{MessageId: aws.String("msg-2")}}

	_, err := NewSESSender(fake).Send(context.Background(), Message{To: []string{"ada@example.com"}})
	require.NoError(t, err)
	assert.Nil(t, fake.input.ReplyToAddresses)
}

func TestSESSender_Send_NoRecipients(t *testing.T) {
	fake := &fakeSES{}

	_, err := NewSESSender(fake).Send(context.Background(), Message{})
	assert.ErrorIs(t, err, ErrNoRecipients)
	assert.Nil(t, fake.input)
}

func TestSESSender_Send_ProviderError(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "MessageRejected", Message: "Email address is not verified."}
	fake := &fakeSES{err: apiErr}

	_, err := NewSESSender(fake).Send(context.Background(), Message{To: []string{"x@example.com"}})
	require.Error(t, err)
	assert.Equal(t, "Email address is not verified.", ErrorMessage(err))
}

func TestErrorMessage_PlainError(t *testing.T) {
	assert.Equal(t, "", ErrorMessage(nil))
	assert.Equal(t, "boom", ErrorMessage(errors.New("boom")))
}
