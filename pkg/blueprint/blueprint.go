// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package blueprint

import (
	"github.com/punchplatform/punch-punchbox-app/pkg/documents"
)

// DefaultCluster is used for placements that do not name a cluster.
const DefaultCluster = "common"

type Blueprint struct {
	Platform documents.Settings  `yaml:"platform" json:"platform"`
	Services map[string]*Service `yaml:"services" json:"services"`
	Users    Users               `yaml:"users" json:"users"`
}

type Service struct {
	Clusters map[string]*Cluster `yaml:"clusters" json:"clusters"`
	Settings documents.Settings  `yaml:"settings" json:"settings"`
}

type Cluster struct {
	Servers  map[string]*Server `yaml:"servers" json:"servers"`
	Settings documents.Settings `yaml:"settings" json:"settings"`
}

type Server struct {
	Settings documents.Settings `yaml:"settings" json:"settings"`
}

// New returns an empty blueprint holding a copy of the platform settings.
func New(platform documents.Settings) *Blueprint {
	return &Blueprint{
		Platform: platform.DeepCopy(),
		Services: map[string]*Service{},
		Users:    NewUsers(),
	}
}

func newService(settings documents.Settings) *Service {
	return &Service{Settings: settings, Clusters: map[string]*Cluster{}}
}

func (s *Service) cluster(name string, seed documents.Settings) *Cluster {
	cluster, found := s.Clusters[name]
	if !found {
		cluster = &Cluster{Settings: seed.DeepCopy(), Servers: map[string]*Server{}}
		s.Clusters[name] = cluster
	}
	return cluster
}

func (c *Cluster) server(name string) *Server {
	server, found := c.Servers[name]
	if !found {
		server = &Server{Settings: documents.Settings{}}
		c.Servers[name] = server
	}
	return server
}

// AsMap returns the blueprint as plain maps, the way templates see it once
// it has been written out and read back.
func (b *Blueprint) AsMap() map[string]interface{} {
	services := map[string]interface{}{}
	for name, service := range b.Services {
		clusters := map[string]interface{}{}
		for clusterName, cluster := range service.Clusters {
			servers := map[string]interface{}{}
			for serverName, server := range cluster.Servers {
				servers[serverName] = map[string]interface{}{
					"settings": plain(server.Settings),
				}
			}
			clusters[clusterName] = map[string]interface{}{
				"servers":  servers,
				"settings": plain(cluster.Settings),
			}
		}
		services[name] = map[string]interface{}{
			"clusters": clusters,
			"settings": plain(service.Settings),
		}
	}

	// unnamed users are keyed "null", as they read back from a written blueprint
	return map[string]interface{}{
		"platform": plain(b.Platform),
		"services": services,
		"users":    b.Users.asMap(),
	}
}

func plain(settings documents.Settings) map[string]interface{} {
	return map[string]interface{}(settings.DeepCopy())
}
