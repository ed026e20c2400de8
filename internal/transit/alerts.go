// Package transit serves MTA service alerts from the GTFS-RT feed
package transit

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/accessnyc/liftwatch/internal/cache"
	"github.com/accessnyc/liftwatch/internal/models"
)

// AlertService fetches and caches MTA service alerts. The feed URL is
// optional configuration; without it the service reports unavailable.
type AlertService struct {
	client  *http.Client
	feedURL string
	alerts  *cache.Value[[]models.ServiceAlert]
	now     func() time.Time
}

// NewAlertService creates a new alert service
func NewAlertService(feedURL string, timeout time.Duration, cacheTTL time.Duration) *AlertService {
	return &AlertService{
		client:  &http.Client{Timeout: timeout},
		feedURL: feedURL,
		alerts:  cache.New[[]models.ServiceAlert](cacheTTL),
		now:     time.Now,
	}
}

// HasFeedURL returns true if the service has an alerts feed configured
func (s *AlertService) HasFeedURL() bool {
	return s.feedURL != ""
}

// GetAlerts returns active service alerts, optionally filtered by route
func (s *AlertService) GetAlerts(routes []string) ([]models.ServiceAlert, error) {
	allAlerts, err := s.fetchAlerts()
	if err != nil {
		return nil, err
	}

	if len(routes) == 0 {
		return allAlerts, nil
	}

	routeSet := make(map[string]bool, len(routes))
	for _, r := range routes {
		routeSet[r] = true
	}

	var filtered []models.ServiceAlert
	for _, alert := range allAlerts {
		for _, r := range alert.Routes {
			if routeSet[r] {
				filtered = append(filtered, alert)
				break
			}
		}
	}
	return filtered, nil
}

func (s *AlertService) fetchAlerts() ([]models.ServiceAlert, error) {
	if cached, ok := s.alerts.Get(s.now()); ok {
		return cached, nil
	}

	resp, err := s.client.Get(s.feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetching alerts feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alerts feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading alerts response: %w", err)
	}

	feed := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, feed); err != nil {
		return nil, fmt.Errorf("parsing alerts protobuf: %w", err)
	}

	alerts := s.parseAlerts(feed)
	s.alerts.Set(alerts, s.now())
	return alerts, nil
}

func (s *AlertService) parseAlerts(feed *gtfs.FeedMessage) []models.ServiceAlert {
	var alerts []models.ServiceAlert
	now := s.now().Unix()

	for _, entity := range feed.GetEntity() {
		alert := entity.GetAlert()
		if alert == nil {
			continue
		}

		active := len(alert.GetActivePeriod()) == 0
		for _, period := range alert.GetActivePeriod() {
			start := int64(period.GetStart())
			end := int64(period.GetEnd())
			if now >= start && (end == 0 || now < end) {
				active = true
				break
			}
		}
		if !active {
			continue
		}

		var routes []string
		seen := make(map[string]bool)
		for _, ie := range alert.GetInformedEntity() {
			if routeID := ie.GetRouteId(); routeID != "" && !seen[routeID] {
				seen[routeID] = true
				routes = append(routes, routeID)
			}
		}

		header := translatedText(alert.GetHeaderText())
		if header == "" {
			continue
		}

		alerts = append(alerts, models.ServiceAlert{
			ID:          entity.GetId(),
			Routes:      routes,
			Header:      header,
			Description: translatedText(alert.GetDescriptionText()),
		})
	}

	return alerts
}

func translatedText(ts *gtfs.TranslatedString) string {
	if ts == nil {
		return ""
	}
	for _, t := range ts.GetTranslation() {
		if t.GetLanguage() == "en" || t.GetLanguage() == "" {
			return t.GetText()
		}
	}
	if len(ts.GetTranslation()) > 0 {
		return ts.GetTranslation()[0].GetText()
	}
	return ""
}
