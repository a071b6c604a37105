package repomanager

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/reelist/reelist/internal/server/repositories/users"
	"github.com/reelist/reelist/internal/server/repositories/watched"
)

// DynamoConfig carries the settings needed to reach DynamoDB. Endpoint and
// the static credentials are optional; they exist so a local DynamoDB
// container can stand in for the real service.
type DynamoConfig struct {
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsersTable   string
	WatchedTable string
}

// DynamoRepositoryManager vends DynamoDB-backed repositories.
type DynamoRepositoryManager struct {
	users   *users.DynamoRepository
	watched *watched.DynamoRepository
}

// NewDynamoRepositoryManager builds a DynamoDB client from cfg and binds the
// repositories to their tables.
func NewDynamoRepositoryManager(ctx context.Context, cfg DynamoConfig) (*DynamoRepositoryManager, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &DynamoRepositoryManager{
		users:   users.NewDynamoRepository(client, cfg.UsersTable),
		watched: watched.NewDynamoRepository(client, cfg.WatchedTable),
	}, nil
}

// RunMigrations is a no-op; the DynamoDB tables are provisioned out of band.
func (m *DynamoRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *DynamoRepositoryManager) Users() users.Repository { return m.users }

func (m *DynamoRepositoryManager) Watched() watched.Repository { return m.watched }

func (m *DynamoRepositoryManager) Close() error { return nil }

var _ RepositoryManager = (*DynamoRepositoryManager)(nil)
