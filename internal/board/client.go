package board

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/karaage0703/pm-bot/internal/config"
)

// requestTimeout bounds each GraphQL round trip.
const requestTimeout = 30 * time.Second

// pageSize is the number of project items requested per page.
const pageSize = 100

// Client queries one project board.
type Client struct {
	gql           *githubv4.Client
	owner         string
	ownerType     string
	projectNumber int
}

// NewClient builds a Client for the configured project, resolving the
// API token from the config or the gh CLI.
func NewClient(cfg *config.Config) (*Client, error) {
	token, err := ResolveToken(cfg.Token)
	if err != nil {
		return nil, err
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), src)
	httpClient.Timeout = requestTimeout

	return &Client{
		gql:           githubv4.NewClient(httpClient),
		owner:         cfg.Owner,
		ownerType:     cfg.OwnerType,
		projectNumber: cfg.ProjectNumber,
	}, nil
}

// FetchItems retrieves all items of the project, following pagination in
// board order. Any query failure aborts the fetch; callers treat it as
// fatal for the run.
func (c *Client) FetchItems(ctx context.Context) ([]Item, error) {
	variables := map[string]interface{}{
		"owner":    githubv4.String(c.owner),
		"number":   githubv4.Int(c.projectNumber), //nolint:gosec // project numbers are small
		"pageSize": githubv4.Int(pageSize),
		"cursor":   (*githubv4.String)(nil),
	}

	var items []Item
	for {
		project, err := c.queryPage(ctx, variables)
		if err != nil {
			return nil, fmt.Errorf("querying project %d of %s: %w", c.projectNumber, c.owner, err)
		}

		for _, n := range project.Items.Nodes {
			items = append(items, decodeItem(n))
		}

		if !bool(project.Items.PageInfo.HasNextPage) {
			return items, nil
		}
		variables["cursor"] = githubv4.NewString(project.Items.PageInfo.EndCursor)
	}
}

// queryPage runs the user or organization variant of the project query,
// depending on the configured owner type.
func (c *Client) queryPage(ctx context.Context, variables map[string]interface{}) (*projectFragment, error) {
	if c.ownerType == config.OwnerTypeOrganization {
		var q struct {
			Organization struct {
				ProjectV2 projectFragment `graphql:"projectV2(number: $number)"`
			} `graphql:"organization(login: $owner)"`
		}
		if err := c.gql.Query(ctx, &q, variables); err != nil {
			return nil, err
		}
		return &q.Organization.ProjectV2, nil
	}

	var q struct {
		User struct {
			ProjectV2 projectFragment `graphql:"projectV2(number: $number)"`
		} `graphql:"user(login: $owner)"`
	}
	if err := c.gql.Query(ctx, &q, variables); err != nil {
		return nil, err
	}
	return &q.User.ProjectV2, nil
}

// newTestClient points the client at an alternate GraphQL endpoint.
func newTestClient(url string, httpClient *http.Client, owner, ownerType string, projectNumber int) *Client {
	return &Client{
		gql:           githubv4.NewEnterpriseClient(url, httpClient),
		owner:         owner,
		ownerType:     ownerType,
		projectNumber: projectNumber,
	}
}

// Raw GraphQL query shapes. Field selections mirror what normalization
// consumes: issue content plus date and single-select field values.

type projectFragment struct {
	Title githubv4.String
	Items struct {
		PageInfo struct {
			HasNextPage githubv4.Boolean
			EndCursor   githubv4.String
		}
		Nodes []itemNode
	} `graphql:"items(first: $pageSize, after: $cursor)"`
}

type itemNode struct {
	Content struct {
		Issue issueFragment `graphql:"... on Issue"`
	}
	FieldValues struct {
		Nodes []fieldValueNode
	} `graphql:"fieldValues(first: 20)"`
}

type issueFragment struct {
	Title  githubv4.String
	Number githubv4.Int
	State  githubv4.String
	Body   githubv4.String
	URL    githubv4.String
	Labels struct {
		Nodes []struct {
			Name githubv4.String
		}
	} `graphql:"labels(first: 10)"`
	Assignees struct {
		Nodes []struct {
			Login githubv4.String
			Name  githubv4.String
		}
	} `graphql:"assignees(first: 5)"`
	Repository struct {
		Name  githubv4.String
		Owner struct {
			Login githubv4.String
		}
	}
}

type fieldValueNode struct {
	DateValue struct {
		Field fieldCommon
		Date  githubv4.String
	} `graphql:"... on ProjectV2ItemFieldDateValue"`
	SingleSelectValue struct {
		Field fieldCommon
		Name  githubv4.String
	} `graphql:"... on ProjectV2ItemFieldSingleSelectValue"`
}

type fieldCommon struct {
	Common struct {
		Name githubv4.String
	} `graphql:"... on ProjectV2FieldCommon"`
}
