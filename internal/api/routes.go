package api

import "github.com/JaimeStill/rookery/pkg/routes"

func domainRoutes(domain *Domain) []routes.Group {
	return []routes.Group{
		domain.Predictions.Handler().Routes(),
	}
}
