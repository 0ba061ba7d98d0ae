package codecommit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/codecommit/types"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundClassification(t *testing.T) {
	assert.True(t, isNotFound(&types.FileDoesNotExistException{}))
	assert.True(t, isNotFound(&types.CommitDoesNotExistException{}))
	assert.True(t, isNotFound(&types.FolderDoesNotExistException{}))

	// Wrapped errors still classify.
	wrapped := fmt.Errorf("operation error CodeCommit: GetFile: %w", &types.FileDoesNotExistException{})
	assert.True(t, isNotFound(wrapped))

	assert.False(t, isNotFound(errors.New("throttled")))
	assert.False(t, isNotFound(&types.RepositoryDoesNotExistException{}))
	assert.False(t, isNotFound(nil))
}
