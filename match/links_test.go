package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSearchLinks(t *testing.T) {
	t.Run("multi word title", func(t *testing.T) {
		links := BuildSearchLinks("Data Scientist")

		assert.Equal(t, "https://www.linkedin.com/jobs/search/?keywords=Data+Scientist", links.LinkedIn)
		assert.Equal(t, "https://in.indeed.com/jobs?q=Data+Scientist", links.Indeed)
		assert.Equal(t, "https://www.naukri.com/Data+Scientist-jobs", links.Naukri)
	})

	t.Run("single word title", func(t *testing.T) {
		links := BuildSearchLinks("Developer")

		assert.Equal(t, "https://www.linkedin.com/jobs/search/?keywords=Developer", links.LinkedIn)
		assert.Equal(t, "https://in.indeed.com/jobs?q=Developer", links.Indeed)
		assert.Equal(t, "https://www.naukri.com/Developer-jobs", links.Naukri)
	})
}
