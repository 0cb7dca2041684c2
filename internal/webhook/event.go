package webhook

import (
	"encoding/json"

	"github.com/sprite-ai/codex/internal/model"
)

// EventPullRequest is the GitHub event type for pull request lifecycle events.
const EventPullRequest = "pull_request"

// Actions that trigger a review. Everything else is ignored.
var reviewableActions = map[string]bool{
	"opened":      true,
	"synchronize": true,
	"reopened":    true,
}

// Wire shapes for the subset of the pull_request payload we read.
// Absent fields decode to zero values, never an error.
type prEventPayload struct {
	Action      string      `json:"action"`
	PullRequest prPayload   `json:"pull_request"`
	Repository  repoPayload `json:"repository"`
}

type prPayload struct {
	Number  int          `json:"number"`
	Title   string       `json:"title"`
	HTMLURL string       `json:"html_url"`
	Base    refPayload   `json:"base"`
	Head    refPayload   `json:"head"`
	User    loginPayload `json:"user"`
}

type refPayload struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

type loginPayload struct {
	Login string `json:"login"`
}

type repoPayload struct {
	FullName string       `json:"full_name"`
	Name     string       `json:"name"`
	Owner    loginPayload `json:"owner"`
}

// ParsePullRequestEvent extracts a PullRequestContext from a raw webhook
// payload. It returns false when the event type is not pull_request, the
// action is not one we review, or the payload does not decode.
func ParsePullRequestEvent(eventType string, payload []byte) (*model.PullRequestContext, bool) {
	if eventType != EventPullRequest {
		return nil, false
	}

	var evt prEventPayload
	if err := json.Unmarshal(payload, &evt); err != nil {
		return nil, false
	}

	if !reviewableActions[evt.Action] {
		return nil, false
	}

	return &model.PullRequestContext{
		Action:       evt.Action,
		Number:       evt.PullRequest.Number,
		Title:        evt.PullRequest.Title,
		URL:          evt.PullRequest.HTMLURL,
		Author:       evt.PullRequest.User.Login,
		BaseBranch:   evt.PullRequest.Base.Ref,
		HeadBranch:   evt.PullRequest.Head.Ref,
		HeadSHA:      evt.PullRequest.Head.SHA,
		RepoFullName: evt.Repository.FullName,
		RepoOwner:    evt.Repository.Owner.Login,
		RepoName:     evt.Repository.Name,
	}, true
}
