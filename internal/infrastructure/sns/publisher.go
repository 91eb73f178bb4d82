package sns

import (
	"context"
	"encoding/json"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/wardro8e/api/internal/config"
)

// EventPublisher publishes operational events to an SNS topic so the ops
// team can react (e.g. a brand submitted verification documents).
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

type publisher struct {
	client   *sns.Client
	topicARN string
}

func NewPublisher(cfg *config.Config) (EventPublisher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &publisher{client: sns.NewFromConfig(awsCfg), topicARN: cfg.OpsTopicARN}, nil
}

func (p *publisher) Publish(ctx context.Context, subject string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	msg := string(b)
	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: &p.topicARN,
		Subject:  &subject,
		Message:  &msg,
	})
	return err
}
