package monitor

import "time"

type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Storage    bool      `json:"storage"`
	LastCheck  time.Time `json:"last_check"`
}
