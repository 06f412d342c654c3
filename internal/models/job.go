package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type Category string

const (
	CategoryWebDevelopment   Category = "Web Development"
	CategoryGraphicsDesign   Category = "Graphics Design"
	CategoryDigitalMarketing Category = "Digital Marketing"
)

// Categories lists the categories in the order the forms offer them.
var Categories = []Category{CategoryWebDevelopment, CategoryGraphicsDesign, CategoryDigitalMarketing}

func ValidCategory(c Category) bool {
	switch c {
	case CategoryWebDevelopment, CategoryGraphicsDesign, CategoryDigitalMarketing:
		return true
	default:
		return false
	}
}

// Price is a money amount. The API may send it as a JSON number or as a
// numeric string; it is always sent back as a number.
type Price float64

func ParsePrice(s string) (Price, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("models.ParsePrice: invalid price %q", s)
	}
	return Price(f), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*p = 0
			return nil
		}
		v, err := ParsePrice(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("models.Price.UnmarshalJSON: %w", err)
	}
	*p = Price(f)
	return nil
}

func (p Price) String() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}

type Buyer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

type Job struct {
	Id          string    `json:"_id"`
	Title       string    `json:"job_title"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	MinPrice    Price     `json:"min_price"`
	MaxPrice    Price     `json:"max_price"`
	Deadline    time.Time `json:"deadline"`
	Buyer       Buyer     `json:"buyer"`
	BidCount    int       `json:"bid_count"`
}

// IsEmpty reports whether the job carries no record, as after a failed fetch.
func (j Job) IsEmpty() bool {
	return j.Id == ""
}

// JobPayload is the body of job create and replace requests. It has no
// standalone email field; the buyer carries it.
type JobPayload struct {
	Title       string    `json:"job_title"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	MinPrice    Price     `json:"min_price"`
	MaxPrice    Price     `json:"max_price"`
	Deadline    time.Time `json:"deadline"`
	Buyer       Buyer     `json:"buyer"`
	BidCount    int       `json:"bid_count"`
}

// Payload returns the replaceable fields of j.
func (j Job) Payload() JobPayload {
	return JobPayload{
		Title:       j.Title,
		Category:    j.Category,
		Description: j.Description,
		MinPrice:    j.MinPrice,
		MaxPrice:    j.MaxPrice,
		Deadline:    j.Deadline,
		Buyer:       j.Buyer,
		BidCount:    j.BidCount,
	}
}

// Equal reports whether p and o hold the same values. Deadlines compare as
// instants.
func (p JobPayload) Equal(o JobPayload) bool {
	return p.Title == o.Title &&
		p.Category == o.Category &&
		p.Description == o.Description &&
		p.MinPrice == o.MinPrice &&
		p.MaxPrice == o.MaxPrice &&
		p.Deadline.Equal(o.Deadline) &&
		p.Buyer == o.Buyer &&
		p.BidCount == o.BidCount
}
