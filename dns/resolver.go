package dns

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/azure"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/gates"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/naming"
	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

const (
	privateDnsZonePath = "/providers/Microsoft.Network/privateDnsZones/"
	publicDnsZonePath  = "/providers/Microsoft.Network/dnszones/"
	zoneLinkPath       = "/virtualNetworkLinks/"
)

type IResolverClient interface {
	Resolve(settings types.NormalizedSettings, virtualNetworks []types.VirtualNetwork, groupIndex types.ResourceGroupIndex) (types.DnsResources, error)
}

type ResolverClient struct {
	Logger *logrus.Logger
}

func NewResolverClient(logger *logrus.Logger) *ResolverClient {
	return &ResolverClient{
		Logger: logger,
	}
}

// Resolve derives the private DNS zones from the service table (expanded per
// private link location) plus the explicitly configured private and public
// zones, then one virtual network link per private zone and link target.
// Zone collections are emitted in sorted zone name order; link targets are
// the hub networks in hub order followed by the declared spokes.
func (resolverClient *ResolverClient) Resolve(settings types.NormalizedSettings, virtualNetworks []types.VirtualNetwork, groupIndex types.ResourceGroupIndex) (types.DnsResources, error) {
	dnsGroup, err := groupIndex.Lookup(types.ScopeDns, settings.Dns.Location)
	if err != nil {
		return types.DnsResources{}, err
	}

	resources := types.DnsResources{
		PrivateZones: resolverClient.resolvePrivateZones(settings, dnsGroup),
		PublicZones:  resolvePublicZones(settings, dnsGroup),
	}

	zoneLinks, err := resolverClient.resolveZoneLinks(settings, virtualNetworks, dnsGroup, resources.PrivateZones)
	if err != nil {
		return types.DnsResources{}, err
	}
	resources.ZoneLinks = zoneLinks

	return resources, nil
}

func (resolverClient *ResolverClient) resolvePrivateZones(settings types.NormalizedSettings, dnsGroup types.ResourceGroup) []types.DnsZone {
	// Expand the static table over the private link locations; explicit
	// zones join with no owning services and are gated on DNS deploy alone.
	servicesByZone := map[string][]string{}
	for _, zoneName := range ZoneNames() {
		if HasLocationToken(zoneName) {
			for _, location := range settings.Dns.PrivateLinkLocations {
				expanded := ExpandZoneName(zoneName, location)
				servicesByZone[expanded] = append(servicesByZone[expanded], zoneServices[zoneName]...)
			}
			continue
		}
		servicesByZone[zoneName] = append(servicesByZone[zoneName], zoneServices[zoneName]...)
	}

	explicitZones := map[string]bool{}
	for _, zoneName := range settings.Dns.Config.PrivateDnsZones {
		explicitZones[zoneName] = true
		if _, exists := servicesByZone[zoneName]; !exists {
			servicesByZone[zoneName] = nil
		}
	}

	zoneNames := make([]string, 0, len(servicesByZone))
	for zoneName := range servicesByZone {
		zoneNames = append(zoneNames, zoneName)
	}
	sort.Strings(zoneNames)

	zones := make([]types.DnsZone, 0, len(zoneNames))
	for _, zoneName := range zoneNames {
		owningServices := servicesByZone[zoneName]
		managed := gates.DnsZoneDeploy(settings, owningServices)
		if explicitZones[zoneName] {
			managed = managed || gates.DnsDeploy(settings)
		}
		zones = append(zones, types.DnsZone{
			Name:              zoneName,
			ResourceID:        dnsGroup.ResourceID + privateDnsZonePath + zoneName,
			ResourceGroupName: dnsGroup.Name,
			Services:          owningServices,
			Tags:              settings.Tags,
			Managed:           managed,
		})
		resolverClient.Logger.Tracef("Resolved private DNS zone %s (managed: %t)", zoneName, managed)
	}

	return zones
}

func resolvePublicZones(settings types.NormalizedSettings, dnsGroup types.ResourceGroup) []types.DnsZone {
	zoneNames := append([]string{}, settings.Dns.Config.PublicDnsZones...)
	sort.Strings(zoneNames)

	zones := make([]types.DnsZone, 0, len(zoneNames))
	for _, zoneName := range zoneNames {
		zones = append(zones, types.DnsZone{
			Name:              zoneName,
			ResourceID:        dnsGroup.ResourceID + publicDnsZonePath + zoneName,
			ResourceGroupName: dnsGroup.Name,
			Tags:              settings.Tags,
			Managed:           gates.DnsDeploy(settings),
		})
	}

	return zones
}

// linkTarget is one virtual network a private zone links to, with the link
// enablement flag that applies to it (hub vs spoke).
type linkTarget struct {
	virtualNetworkID string
	linkEnabled      bool
}

func (resolverClient *ResolverClient) resolveZoneLinks(settings types.NormalizedSettings, virtualNetworks []types.VirtualNetwork, dnsGroup types.ResourceGroup, privateZones []types.DnsZone) ([]types.DnsZoneLink, error) {
	dnsConfig := settings.Dns.Config

	targets := []linkTarget{}
	seen := map[string]bool{}
	for _, virtualNetwork := range virtualNetworks {
		targets = append(targets, linkTarget{virtualNetworkID: virtualNetwork.ResourceID, linkEnabled: dnsConfig.EnablePrivateDnsZoneVirtualNetworkLinkOnHubs})
		seen[virtualNetwork.ResourceID] = true
	}
	spokeIDs := []string{}
	for _, hubNetwork := range settings.HubNetworks {
		spokeIDs = append(spokeIDs, hubNetwork.Config.SpokeVirtualNetworkResourceIDs...)
	}
	spokeIDs = append(spokeIDs, dnsConfig.VirtualNetworkResourceIDsToLink...)
	for _, spokeID := range spokeIDs {
		if seen[spokeID] {
			continue
		}
		seen[spokeID] = true
		targets = append(targets, linkTarget{virtualNetworkID: spokeID, linkEnabled: dnsConfig.EnablePrivateDnsZoneVirtualNetworkLinkOnSpokes})
	}

	zoneLinks := []types.DnsZoneLink{}
	for _, zone := range privateZones {
		for _, target := range targets {
			linkName, err := LinkName(target.virtualNetworkID)
			if err != nil {
				return nil, err
			}
			zoneLinks = append(zoneLinks, types.DnsZoneLink{
				Name:                linkName,
				ResourceID:          zone.ResourceID + zoneLinkPath + linkName,
				ResourceGroupName:   dnsGroup.Name,
				ZoneName:            zone.Name,
				VirtualNetworkID:    target.virtualNetworkID,
				RegistrationEnabled: false,
				Tags:                settings.Tags,
				Managed:             gates.ZoneLinkDeploy(zone.Managed, target.linkEnabled),
			})
		}
	}

	resolverClient.Logger.Debugf("Resolved %d virtual network links across %d private DNS zones", len(zoneLinks), len(privateZones))

	return zoneLinks, nil
}

// LinkName derives the deterministic link name for a target network: the
// target's subscription GUID joined with a stable hash of the full resource
// ID. The same target always yields the same name across runs.
func LinkName(virtualNetworkID string) (string, error) {
	subscriptionID, err := azure.SubscriptionIDFromResourceID(virtualNetworkID)
	if err != nil {
		return "", err
	}
	return subscriptionID + "-" + naming.HashName(virtualNetworkID), nil
}
