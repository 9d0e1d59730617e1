package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"copyhub/internal/infra"
	"copyhub/internal/sqlinline"
)

const (
	ProviderYandexGPT = "yandexgpt"
)

// YandexCredentials holds the API key and cloud folder used to reach YandexGPT.
type YandexCredentials struct {
	APIKey   string
	FolderID string
}

// Complete reports whether both values are present.
func (c YandexCredentials) Complete() bool {
	return c.APIKey != "" && c.FolderID != ""
}

type tokenProperties struct {
	FolderID string `json:"folder_id,omitempty"`
}

type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

// YandexCredentials returns the stored YandexGPT credentials. A missing row yields zero values.
func (s *Store) YandexCredentials(ctx context.Context) (YandexCredentials, error) {
	token, raw, err := s.token(ctx, ProviderYandexGPT)
	if err != nil {
		return YandexCredentials{}, err
	}
	creds := YandexCredentials{APIKey: token}
	if len(raw) > 0 {
		var props tokenProperties
		if err := json.Unmarshal(raw, &props); err != nil {
			return YandexCredentials{}, fmt.Errorf("credentials: decode properties: %w", err)
		}
		creds.FolderID = strings.TrimSpace(props.FolderID)
	}
	return creds, nil
}

func (s *Store) SetYandexCredentials(ctx context.Context, apiKey, folderID string) error {
	apiKey = strings.TrimSpace(apiKey)
	folderID = strings.TrimSpace(folderID)
	if apiKey == "" {
		return errors.New("yandexgpt api key is required")
	}
	if folderID == "" {
		return errors.New("yandex cloud folder id is required")
	}
	return s.upsert(ctx, ProviderYandexGPT, apiKey, tokenProperties{FolderID: folderID})
}

func (s *Store) token(ctx context.Context, provider string) (string, []byte, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectIntegrationToken, provider)
	var (
		token string
		props []byte
	)
	if err := row.Scan(&token, &props); err != nil {
		if infra.IsNoRows(err) {
			return "", nil, nil
		}
		return "", nil, err
	}
	return strings.TrimSpace(token), props, nil
}

func (s *Store) upsert(ctx context.Context, provider, token string, props tokenProperties) error {
	raw, err := json.Marshal(props)
	if err != nil {
		return err
	}
	_, err = s.sql.Exec(ctx, sqlinline.QUpsertIntegrationToken, provider, token, raw)
	return err
}
