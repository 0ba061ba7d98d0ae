package codecommit

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cc "github.com/aws/aws-sdk-go-v2/service/codecommit"
	"github.com/aws/aws-sdk-go-v2/service/codecommit/types"
)

const readmePath = "README.md"

// Client is a thin wrapper around the CodeCommit API.
type Client struct {
	api *cc.Client
}

// NewClient resolves credentials through the SDK's default chain. region
// overrides the chain's region when non-empty.
func NewClient(ctx context.Context, region string) (*Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &Client{api: cc.NewFromConfig(awsCfg)}, nil
}

// ListRepositories returns every repository name visible to the configured
// credentials, sorted by name. The API pages via NextToken; pages are
// fetched until exhaustion.
func (c *Client) ListRepositories(ctx context.Context) ([]string, error) {
	input := &cc.ListRepositoriesInput{
		SortBy: types.SortByEnumRepositoryName,
		Order:  types.OrderEnumAscending,
	}

	var names []string
	p := cc.NewListRepositoriesPaginator(c.api, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing repositories: %w", err)
		}
		for _, repo := range page.Repositories {
			names = append(names, aws.ToString(repo.RepositoryName))
		}
	}
	return names, nil
}

// GetReadme fetches README.md from the repository's default branch. found is
// false when the repository has no README (or no commits at all); err is
// reserved for other failures.
func (c *Client) GetReadme(ctx context.Context, repoName string) (content string, found bool, err error) {
	out, err := c.api.GetFile(ctx, &cc.GetFileInput{
		RepositoryName: aws.String(repoName),
		FilePath:       aws.String(readmePath),
	})
	if err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("fetching %s for %s: %w", readmePath, repoName, err)
	}
	return string(out.FileContent), true, nil
}

// isNotFound classifies the API errors that mean "this repository has no
// README" rather than "the call failed". An empty repository surfaces as a
// missing commit, not a missing file.
func isNotFound(err error) bool {
	var fileMissing *types.FileDoesNotExistException
	var commitMissing *types.CommitDoesNotExistException
	var folderMissing *types.FolderDoesNotExistException
	return errors.As(err, &fileMissing) ||
		errors.As(err, &commitMissing) ||
		errors.As(err, &folderMissing)
}
