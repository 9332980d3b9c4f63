package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// FlexString decodes a JSON value that the source emits sometimes as a
// string and sometimes as a number (postcodes, street numbers, ages).
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// Person is one synthetic record from the random-person API. Picture maps
// size label to URL.
type Person struct {
	Name struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	DOB   struct {
		Age FlexString `json:"age"`
	} `json:"dob"`
	Location struct {
		Street struct {
			Name   string     `json:"name"`
			Number FlexString `json:"number"`
		} `json:"street"`
		Postcode FlexString `json:"postcode"`
		City     string     `json:"city"`
		State    string     `json:"state"`
		Country  string     `json:"country"`
	} `json:"location"`
	Picture map[string]string `json:"picture"`
}

type personList struct {
	Results []Person `json:"results"`
}

// PersonFetcher pulls synthetic person records from an external source.
type PersonFetcher interface {
	FetchPersons(ctx context.Context, count int, seed string) ([]Person, error)
}

// RandomUserClient talks to a randomuser.me-compatible API.
type RandomUserClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRandomUserClient(baseURL string, timeout time.Duration) *RandomUserClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RandomUserClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchPersons requests count records with a fixed seed so repeated calls
// return the same people. Any non-200 status is an error; the seeder treats
// it as fatal rather than seeding partially.
func (c *RandomUserClient) FetchPersons(ctx context.Context, count int, seed string) ([]Person, error) {
	url := fmt.Sprintf("%s/api/?results=%d&seed=%s", c.baseURL, count, seed)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch persons: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to fetch data: status code %d", resp.StatusCode)
	}

	var list personList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return list.Results, nil
}
