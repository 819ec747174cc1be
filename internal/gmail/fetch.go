package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	gmailv1 "google.golang.org/api/gmail/v1"

	"github.com/subtrail/subtrail/internal/common"
	"github.com/subtrail/subtrail/internal/model"
)

const gmailUser = "me"

// FetchSenderGroups issues the search-query set for the lookback window
// and returns the matched emails grouped by sending address. Metadata is
// fetched concurrently with a bounded worker pool; duplicate hits across
// queries are collapsed by message ID.
func (c *Client) FetchSenderGroups(ctx context.Context, lookbackMonths int) (map[string][]model.EmailMetadata, error) {
	ids, err := c.searchMessageIDs(ctx, lookbackMonths)
	if err != nil {
		return nil, err
	}

	type result struct {
		email model.EmailMetadata
		err   error
	}

	jobs := make(chan string)
	results := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				email, err := c.fetchMetadata(id)
				results <- result{email: email, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, id := range ids {
			select {
			case <-ctx.Done():
				return
			case jobs <- id:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	groups := make(map[string][]model.EmailMetadata)
	var firstErr error
	for r := range results {
		if r.err != nil {
			// Keep aggregating what we can; surface the first failure only
			// if nothing was fetched at all.
			if firstErr == nil {
				firstErr = r.err
			}
			common.LogDebug("Skipping unfetchable message", common.Fields{"error": r.err})
			continue
		}
		addr := extractAddress(r.email.From)
		if addr == "" {
			continue
		}
		groups[addr] = append(groups[addr], r.email)
	}

	if len(groups) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return groups, ctx.Err()
}

// FetchBody retrieves and decodes the plain-text body of one message.
func (c *Client) FetchBody(ctx context.Context, messageID string) (string, error) {
	msg, err := c.svc.Users.Messages.Get(gmailUser, messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get message %s: %w", messageID, err)
	}
	return extractPlainText(msg.Payload), nil
}

func (c *Client) searchMessageIDs(ctx context.Context, lookbackMonths int) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string

	for _, query := range BuildSearchQueries(lookbackMonths) {
		resp, err := c.svc.Users.Messages.List(gmailUser).
			Q(query).
			MaxResults(c.maxResults).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", query, err)
		}
		for _, m := range resp.Messages {
			if !seen[m.Id] {
				seen[m.Id] = true
				ids = append(ids, m.Id)
			}
		}
	}

	return ids, nil
}

func (c *Client) fetchMetadata(id string) (model.EmailMetadata, error) {
	msg, err := c.svc.Users.Messages.Get(gmailUser, id).
		Format("metadata").
		MetadataHeaders("From", "Subject", "Date").
		Do()
	if err != nil {
		return model.EmailMetadata{}, fmt.Errorf("get message %s: %w", id, err)
	}

	email := model.EmailMetadata{
		ID:      msg.Id,
		Snippet: msg.Snippet,
		Date:    time.UnixMilli(msg.InternalDate).UTC(),
	}
	if msg.Payload != nil {
		for _, h := range msg.Payload.Headers {
			switch strings.ToLower(h.Name) {
			case "from":
				email.From = h.Value
			case "subject":
				email.Subject = h.Value
			}
		}
	}
	return email, nil
}

// extractAddress pulls the bare address out of an RFC 5322 From header.
func extractAddress(from string) string {
	if start := strings.Index(from, "<"); start >= 0 {
		if end := strings.Index(from[start:], ">"); end > 0 {
			return strings.ToLower(strings.TrimSpace(from[start+1 : start+end]))
		}
	}
	return strings.ToLower(strings.TrimSpace(from))
}

// extractPlainText walks a MIME part tree and returns the first text/plain
// body found, preferring text/plain over text/html in multipart messages.
func extractPlainText(part *gmailv1.MessagePart) string {
	if part == nil {
		return ""
	}

	if strings.EqualFold(part.MimeType, "text/plain") && part.Body != nil && part.Body.Data != "" {
		return decodeBase64URL(part.Body.Data)
	}

	for _, sub := range part.Parts {
		if strings.EqualFold(sub.MimeType, "text/plain") {
			if body := extractPlainText(sub); body != "" {
				return body
			}
		}
	}
	for _, sub := range part.Parts {
		if body := extractPlainText(sub); body != "" {
			return body
		}
	}

	return ""
}

func decodeBase64URL(data string) string {
	decoded, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(data)
	if err != nil {
		return ""
	}
	return string(decoded)
}
