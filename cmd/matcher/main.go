// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/jobmatch"
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	db, err := jobmatch.NewDatabase("./jobs_db")
	if err != nil {
		panic(err)
	}
	defer db.Close()
	matcher, err := db.NewMatcher()
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	resume := "I know Python and SQL"
	if len(os.Args) > 1 {
		resume = strings.Join(os.Args[1:], " ")
	}

	report, err := matcher.Match(ctx, resume)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Suggested role: '%s' [%0.3f]\n", report.Suggestion.Role, report.Suggestion.Confidence)
	for i, hit := range report.Results {
		fmt.Printf("%d: '%s' at %s (%d)[%0.2f]\n",
			i, hit.Posting.Title, hit.Posting.Company, hit.Posting.Id, hit.Score)
	}
}
