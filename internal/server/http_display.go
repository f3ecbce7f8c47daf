package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET  /health               - Health check")
	fmt.Println("  GET  /stats                - Server statistics")
	fmt.Println("  POST /score                - Score a resume (?diagnose=true adds schema issues)")
	fmt.Println("  POST /validate             - Schema diagnostics for a resume")
	if s.Repository != nil {
		fmt.Println("  POST /resumes              - Store a resume document")
		fmt.Println("  GET  /resumes/{id}/score   - Score a stored resume")
		fmt.Println("  GET  /resumes/{id}/scores  - Score history of a stored resume")
	} else {
		fmt.Println("  /resumes/...               - DISABLED (no database configured)")
	}
	if s.Enhancer != nil {
		fmt.Println("  POST /enhance              - Rewrite a summary, bullet or project description")
	} else {
		fmt.Println("  POST /enhance              - DISABLED (no AI API key configured)")
	}
}

func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Printf("API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Println("Include 'X-API-Key: <your-key>' header in requests to every endpoint except /health")
	} else {
		fmt.Println("API authentication: DISABLED (no API keys configured)")
		fmt.Println("WARNING: API endpoints are publicly accessible!")
	}
}

func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
	}
}

func (s *Server) displayRateLimitInfo() {
	if s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Println("  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Println("  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Println("Rate limiting: DISABLED")
	}
}
