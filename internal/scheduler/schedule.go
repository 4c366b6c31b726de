package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
)

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// DescribeSchedule returns a human-readable form of common schedules.
func DescribeSchedule(schedule string) string {
	switch schedule {
	case "0 * * * *":
		return "every hour at :00"
	case "0 */6 * * *":
		return "every 6 hours"
	case "0 0 * * *":
		return "daily at midnight"
	case "0 3 * * *":
		return "daily at 03:00"
	case "0 0 * * 0":
		return "weekly on Sunday at midnight"
	default:
		return "custom schedule " + schedule
	}
}

// NextRun returns the first activation of schedule strictly after from.
func NextRun(schedule string, from time.Time) (time.Time, error) {
	sched, err := scheduleParser.Parse(schedule)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(from), nil
}
