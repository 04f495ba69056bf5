package match

import (
	"strings"

	"github.com/poiesic/jobmatch/core"
)

// BuildSearchLinks derives job-board search URLs using the posting title as
// the keyword. Spaces become plus signs, the keyword shape the boards expect
// (for example "Data Scientist" searches as "Data+Scientist").
func BuildSearchLinks(title string) core.SearchLinks {
	keyword := strings.ReplaceAll(title, " ", "+")
	return core.SearchLinks{
		LinkedIn: "https://www.linkedin.com/jobs/search/?keywords=" + keyword,
		Indeed:   "https://in.indeed.com/jobs?q=" + keyword,
		Naukri:   "https://www.naukri.com/" + keyword + "-jobs",
	}
}
