package model

import (
	"net/url"
	"strings"

	"github.com/codexlabs/unroller/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const maxRepoURLLength = 2048

// RepoURL is a validated clone URL of the form https://{host}/{owner}/{repo}.git.
// ParseRepoURL is the only constructor; a RepoURL value has passed every check.
type RepoURL struct {
	host  types.GitHost
	owner string
	repo  string
}

// ParseRepoURL normalizes a raw repository URL and validates it against the
// host allow-list. Cloning is the only network side effect in the system, so
// every check happens here, before any subprocess is spawned.
func ParseRepoURL(raw string, allowedHosts []string) (*RepoURL, error) {
	if len(raw) > maxRepoURLLength {
		return nil, goerr.New("repo URL is too long",
			goerr.T(types.TagInvalidInput),
			goerr.V("length", len(raw)),
		)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse repo URL", goerr.T(types.TagInvalidInput))
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, goerr.New("only http/https repo URLs are allowed",
			goerr.T(types.TagInvalidInput),
			goerr.V("scheme", parsed.Scheme),
		)
	}

	if parsed.User != nil || parsed.RawQuery != "" || parsed.Fragment != "" {
		return nil, goerr.New("repo URL contains unsupported credentials or query params",
			goerr.T(types.TagInvalidInput),
		)
	}

	host := strings.ToLower(parsed.Hostname())
	allowed := false
	for _, h := range allowedHosts {
		if host == strings.ToLower(strings.TrimSpace(h)) {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, goerr.New("repo host is not allowed",
			goerr.T(types.TagInvalidInput),
			goerr.V("host", host),
		)
	}

	var parts []string
	for _, p := range strings.Split(parsed.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return nil, goerr.New("repo URL must include owner/repo", goerr.T(types.TagInvalidInput))
	}

	owner, repo := parts[0], parts[1]
	repo = strings.TrimSuffix(repo, ".git")
	if owner == "" || repo == "" {
		return nil, goerr.New("repo URL must include owner/repo", goerr.T(types.TagInvalidInput))
	}

	return &RepoURL{host: types.GitHost(host), owner: owner, repo: repo}, nil
}

func (x *RepoURL) Host() types.GitHost { return x.host }
func (x *RepoURL) Owner() string       { return x.owner }
func (x *RepoURL) Repo() string        { return x.repo }

// CloneURL returns the canonical clone URL.
func (x *RepoURL) CloneURL() string {
	return "https://" + string(x.host) + "/" + x.owner + "/" + x.repo + ".git"
}

func (x *RepoURL) String() string {
	return x.CloneURL()
}
