package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// StaticCredentials are the temporary credentials handed to an action at invocation time
type StaticCredentials struct {
	AccessKeyId     string `json:"AccessKeyId"`
	SecretAccessKey string `json:"SecretAccessKey"`
	SessionToken    string `json:"SessionToken"`
}

// LoadStaticConfig builds an AWS config pinned to the given region and credentials.
// Shared profiles and the default credential chain are never consulted.
func LoadStaticConfig(ctx context.Context, region string, creds StaticCredentials) (aws.Config, error) {
	provider := credentials.NewStaticCredentialsProvider(creds.AccessKeyId, creds.SecretAccessKey, creds.SessionToken)

	return config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(provider),
		config.WithSharedConfigFiles([]string{}),
		config.WithSharedCredentialsFiles([]string{}),
	)
}

// CallerIdentityClient is the subset of the STS client used to check credentials
type CallerIdentityClient interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

func NewCallerIdentityClient(cfg aws.Config) CallerIdentityClient {
	return sts.NewFromConfig(cfg)
}

// GetCallerIdentity returns the ARN the credentials resolve to. Expired or revoked
// credentials fail here instead of on the first relayer call.
func GetCallerIdentity(ctx context.Context, client CallerIdentityClient) (string, error) {
	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", err
	}
	if out == nil || out.Arn == nil {
		return "", fmt.Errorf("caller identity has no ARN")
	}
	return aws.ToString(out.Arn), nil
}
