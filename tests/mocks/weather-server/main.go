package main

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	errorZip = "99999"
	slowZip  = "00000"
)

// location is the canned weather for one zip, in Fahrenheit
type location struct {
	Name        string
	TempF       float64
	Description string
	HighF       float64
	LowF        float64
	Timezone    int
}

var locations = map[string]location{
	"90210": {Name: "Beverly Hills", TempF: 75.6, Description: "Partly cloudy", HighF: 81.2, LowF: 63.4, Timezone: -25200},
	"10001": {Name: "New York", TempF: 62.1, Description: "Overcast", HighF: 66.8, LowF: 54.3, Timezone: -14400},
	"60601": {Name: "Chicago", TempF: 58.4, Description: "Light rain", HighF: 61.0, LowF: 49.7, Timezone: -18000},
	"33101": {Name: "Miami", TempF: 86.9, Description: "Sunny", HighF: 90.5, LowF: 77.2, Timezone: -14400},
}

func main() {
	gin.SetMode(gin.ReleaseMode)

	port := os.Getenv("MOCK_PORT")
	if port == "" {
		port = "8081"
	}

	slog.Info("Mock Weather API server starting", "port", port)
	if err := newRouter(slowDelay(), time.Now).Run(":" + port); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

func slowDelay() time.Duration {
	if seconds, err := strconv.Atoi(os.Getenv("MOCK_SLOW_SECONDS")); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	return 15 * time.Second
}

func newRouter(delay time.Duration, now func() time.Time) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/v1/forecast.json", func(c *gin.Context) {
		if c.Query("key") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": 1002, "message": "API key is invalid or not provided."}})
			return
		}
		zip := c.Query("q")
		if stall(c, zip, delay) {
			return
		}
		loc, ok := locations[zip]
		if !ok || zip == errorZip {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": 1006, "message": "No matching location found."}})
			return
		}

		days, _ := strconv.Atoi(c.DefaultQuery("days", "5"))
		c.JSON(http.StatusOK, weatherAPIPayload(loc, days, now()))
	})

	r.GET("/data/2.5/forecast", func(c *gin.Context) {
		if c.Query("appid") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"cod": 401, "message": "Invalid API key."})
			return
		}
		zip := c.Query("zip")
		if len(zip) > 3 && zip[len(zip)-3:] == ",US" {
			zip = zip[:len(zip)-3]
		}
		if stall(c, zip, delay) {
			return
		}
		loc, ok := locations[zip]
		if !ok || zip == errorZip {
			c.JSON(http.StatusNotFound, gin.H{"cod": "404", "message": "city not found"})
			return
		}

		c.JSON(http.StatusOK, openWeatherMapPayload(loc, now()))
	})

	return r
}

// stall holds the slow zip until the delay passes or the client gives up
func stall(c *gin.Context, zip string, delay time.Duration) bool {
	if zip != slowZip {
		return false
	}
	select {
	case <-time.After(delay):
		c.JSON(http.StatusOK, gin.H{})
	case <-c.Request.Context().Done():
	}
	return true
}

func weatherAPIPayload(loc location, days int, now time.Time) gin.H {
	if days <= 0 {
		days = 5
	}
	forecastDays := make([]gin.H, 0, days)
	for i := 0; i < days; i++ {
		day := now.UTC().AddDate(0, 0, i)
		forecastDays = append(forecastDays, gin.H{
			"date": day.Format("2006-01-02"),
			"day": gin.H{
				"maxtemp_f": loc.HighF + float64(i),
				"mintemp_f": loc.LowF - float64(i)/2,
			},
		})
	}

	return gin.H{
		"location": gin.H{"name": loc.Name},
		"current": gin.H{
			"temp_f":    loc.TempF,
			"condition": gin.H{"text": loc.Description},
		},
		"forecast": gin.H{"forecastday": forecastDays},
	}
}

// openWeatherMapPayload emits five days of 3-hour samples starting at the current UTC hour block
func openWeatherMapPayload(loc location, now time.Time) gin.H {
	start := now.UTC().Truncate(3 * time.Hour)
	samples := make([]gin.H, 0, 40)
	for i := 0; i < 40; i++ {
		at := start.Add(time.Duration(i) * 3 * time.Hour)
		swing := float64(i%8) - 4
		samples = append(samples, gin.H{
			"dt":     at.Unix(),
			"dt_txt": at.Format("2006-01-02 15:04:05"),
			"main": gin.H{
				"temp":     loc.TempF + swing,
				"temp_min": loc.LowF + swing,
				"temp_max": loc.HighF + swing,
			},
			"weather": []gin.H{{"description": loc.Description}},
		})
	}

	return gin.H{
		"cod":  "200",
		"list": samples,
		"city": gin.H{"name": loc.Name, "timezone": loc.Timezone},
	}
}
