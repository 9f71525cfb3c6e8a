// Package eligibility decides whether a creature may take a training or
// race action right now. Denials are ordinary results carrying a machine
// reason code and a human message, never errors.
package eligibility

import (
	"fmt"
	"time"
)

// SeasonStatus is the lifecycle state of the current season.
type SeasonStatus string

const (
	SeasonPending SeasonStatus = "pending"
	SeasonActive  SeasonStatus = "active"
	SeasonEnded   SeasonStatus = "ended"
)

// Gate limits.
const (
	MaxRegularActionsPerDay = 2
	ActionCooldown          = 6 * time.Hour
)

// Reason codes for denials.
const (
	CodeOK              = "ok"
	CodeSeasonNotActive = "season_not_active"
	CodeDailyLimit      = "daily_limit_reached"
	CodeCooldown        = "cooldown_active"
)

// Decision is the gate's verdict. UsedBonus tells the caller which counter
// to decrement: the bonus-action counter bypasses both the daily cap and
// the cooldown, and its consumption must not advance the regular-action
// timestamp.
type Decision struct {
	Allowed      bool          `json:"allowed"`
	Code         string        `json:"code"`
	Reason       string        `json:"reason,omitempty"`
	UsedBonus    bool          `json:"used_bonus,omitempty"`
	CooldownLeft time.Duration `json:"cooldown_left,omitempty"`
}

// Check evaluates eligibility for one action. regularToday counts non-bonus
// actions already taken today; lastRegularAt is the timestamp of the most
// recent non-bonus action (nil if none).
func Check(season SeasonStatus, bonusActions int, regularToday int, lastRegularAt *time.Time, now time.Time) Decision {
	if season != SeasonActive {
		return Decision{
			Allowed: false,
			Code:    CodeSeasonNotActive,
			Reason:  "season not active",
		}
	}

	if bonusActions > 0 {
		return Decision{
			Allowed:   true,
			Code:      CodeOK,
			UsedBonus: true,
		}
	}

	if regularToday >= MaxRegularActionsPerDay {
		return Decision{
			Allowed: false,
			Code:    CodeDailyLimit,
			Reason:  "no actions remaining today",
		}
	}

	if lastRegularAt != nil {
		elapsed := now.Sub(*lastRegularAt)
		if elapsed < ActionCooldown {
			left := ActionCooldown - elapsed
			return Decision{
				Allowed:      false,
				Code:         CodeCooldown,
				Reason:       fmt.Sprintf("cooldown active, %s remaining", left.Round(time.Second)),
				CooldownLeft: left,
			}
		}
	}

	return Decision{Allowed: true, Code: CodeOK}
}
