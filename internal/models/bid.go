package models

import "time"

type Bid struct {
	JobId     string    `json:"job_id"`
	Email     string    `json:"emailAddress"`
	Price     Price     `json:"price"`
	Comment   string    `json:"comment"`
	Deadline  time.Time `json:"deadline"`
	Timestamp time.Time `json:"timestamp"`
}
