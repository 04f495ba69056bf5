package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("machine learning engineer")
		id2 := IDFromContent("machine learning engineer")
		assert.Equal(t, id1, id2)
	})

	t.Run("distinct content gives distinct ids", func(t *testing.T) {
		id1 := IDFromContent("data scientist")
		id2 := IDFromContent("devops engineer")
		assert.NotEqual(t, id1, id2)
	})
}

func TestSource(t *testing.T) {
	t.Run("string round trip", func(t *testing.T) {
		for _, source := range []Source{SourceIndeed, SourceNaukri, SourceLinkedIn} {
			parsed, err := ParseSource(source.String())
			require.NoError(t, err)
			assert.Equal(t, source, parsed)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ParseSource("monster")
		assert.ErrorIs(t, err, ErrInvalidSource)
	})

	t.Run("unknown value stringifies", func(t *testing.T) {
		assert.Equal(t, "unknown", Source(99).String())
	})
}

func TestConfidenceScale_String(t *testing.T) {
	assert.Equal(t, "cosine", ScaleCosine.String())
	assert.Equal(t, "normalized", ScaleNormalized.String())
	assert.Equal(t, "unknown", ConfidenceScale(99).String())

	// The scale renders readably wherever a suggestion is printed
	assert.Equal(t, "confidence 0.850, cosine scale",
		fmt.Sprintf("confidence %.3f, %s scale", 0.85, ScaleCosine))
}

func TestJobPosting_CombinedText(t *testing.T) {
	posting := &JobPosting{
		Title:       "Data Scientist",
		Company:     "XYZ Analytics",
		Description: "Python SQL ML",
	}
	assert.Equal(t, "Data Scientist XYZ Analytics Python SQL ML", posting.CombinedText())
}

func TestJobPosting_Fingerprint(t *testing.T) {
	posting := &JobPosting{
		Source:  SourceNaukri,
		Title:   "Data Scientist",
		Company: "XYZ Analytics",
		Url:     "https://www.naukri.com/example1",
	}

	t.Run("stable across copies", func(t *testing.T) {
		clone := *posting
		assert.Equal(t, posting.Fingerprint(), clone.Fingerprint())
	})

	t.Run("ignores mutable fields", func(t *testing.T) {
		clone := *posting
		clone.Description = "different text"
		clone.Id = 42
		assert.Equal(t, posting.Fingerprint(), clone.Fingerprint())
	})

	t.Run("differs per board", func(t *testing.T) {
		clone := *posting
		clone.Source = SourceIndeed
		assert.NotEqual(t, posting.Fingerprint(), clone.Fingerprint())
	})
}

func TestJobPostingMUS_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	posting := JobPosting{
		Id:          7,
		Source:      SourceLinkedIn,
		Title:       "Software Engineer - ML",
		Company:     "InnovateAI",
		Location:    "Remote",
		Description: "Build ML infrastructure, model deployment, Docker, AWS, TensorFlow",
		Url:         "https://www.linkedin.com/jobs/view/example1",
		InsertedAt:  now,
		UpdatedAt:   now,
	}

	buf := make([]byte, JobPostingMUS.Size(posting))
	n := JobPostingMUS.Marshal(posting, buf)
	assert.Equal(t, len(buf), n)

	decoded, n, err := JobPostingMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, posting, decoded)

	skipped, err := JobPostingMUS.Skip(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), skipped)
}
