package secret

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/samber/do"

	"github.com/dreampaper/dreampaper/internal/log"
)

// ParameterStore keeps credentials as SecureString parameters in SSM.
type ParameterStore struct {
	client *ssm.Client
}

var _ Store = (*ParameterStore)(nil)

func NewParameterStore(i *do.Injector) (Store, error) {
	return &ParameterStore{client: do.MustInvoke[*ssm.Client](i)}, nil
}

func (s *ParameterStore) Store(ctx context.Context, key, value string) error {
	log.FromContextOrDiscard(ctx).WithGroup("parameter store").Info("storing parameter", "key", key)

	_, err := s.client.PutParameter(ctx, &ssm.PutParameterInput{
		Name:      aws.String(key),
		Value:     aws.String(value),
		Type:      types.ParameterTypeSecureString,
		Overwrite: aws.Bool(true),
	})
	return err
}

func (s *ParameterStore) Retrieve(ctx context.Context, key string) (string, error) {
	log.FromContextOrDiscard(ctx).WithGroup("parameter store").Info("fetching parameter", "key", key)

	out, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(key),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", err
	}
	return aws.ToString(out.Parameter.Value), nil
}

func (s *ParameterStore) Erase(ctx context.Context, key string) error {
	log.FromContextOrDiscard(ctx).WithGroup("parameter store").Info("deleting parameter", "key", key)

	_, err := s.client.DeleteParameter(ctx, &ssm.DeleteParameterInput{Name: aws.String(key)})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return nil
		}
	}
	return err
}
