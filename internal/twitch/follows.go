package twitch

import (
	"context"
	"net/url"
	"strconv"
)

// Follows returns every channel username follows.
//
// Pages of PageSize are requested from offset 0 until the accumulated count
// reaches the server-reported total. An empty page also stops the walk so a
// list that shrinks mid-walk cannot loop forever. Any failed page aborts the
// whole load.
func (c *Client) Follows(ctx context.Context, username string) ([]Follow, error) {
	var follows []Follow
	offset := 0
	for {
		page, err := c.followsPage(ctx, username, offset)
		if err != nil {
			return nil, err
		}
		follows = append(follows, page.Follows...)

		if len(page.Follows) == 0 || len(follows) >= page.Total {
			return follows, nil
		}
		offset += len(page.Follows)
	}
}

func (c *Client) followsPage(ctx context.Context, username string, offset int) (*followsPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(PageSize))
	query.Set("offset", strconv.Itoa(offset))

	page := new(followsPage)
	path := "/users/" + url.PathEscape(username) + "/follows/channels"
	if err := c.getJSON(ctx, path, query, page); err != nil {
		return nil, err
	}
	return page, nil
}
