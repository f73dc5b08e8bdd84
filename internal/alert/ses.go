package alert

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

type Alerter interface {
	Alert(ctx context.Context, subject string, body string) error
}

// SESAlerter emails failure alerts via SESv2.
type SESAlerter struct {
	client *sesv2.Client
	from   string
	to     []string
}

func NewSESAlerter(cfg aws.Config, from string, to []string) (*SESAlerter, error) {
	if from == "" {
		return nil, fmt.Errorf("alert from address is not set")
	}
	if len(to) == 0 {
		return nil, fmt.Errorf("alert recipient list is empty")
	}
	return &SESAlerter{
		client: sesv2.NewFromConfig(cfg),
		from:   from,
		to:     to,
	}, nil
}

func (a *SESAlerter) Alert(ctx context.Context, subject, body string) error {
	_, err := a.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(a.from),
		Destination: &types.Destination{
			ToAddresses: a.to,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	return err
}

// Noop is used when no alert destination is configured.
type Noop struct{}

func (Noop) Alert(ctx context.Context, subject, body string) error { return nil }
