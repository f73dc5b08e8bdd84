package secrets

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// APIKey fetches the provider API key from Secrets Manager. The key is read
// once at startup; handlers receive the plain string.
func APIKey(ctx context.Context, cfg aws.Config, secretName string) (string, error) {
	client := secretsmanager.NewFromConfig(cfg)

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return "", fmt.Errorf("get secret %s: %w", secretName, err)
	}

	key := aws.ToString(out.SecretString)
	if key == "" {
		return "", fmt.Errorf("secret %s is empty", secretName)
	}
	return key, nil
}
