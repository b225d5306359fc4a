package assembler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/mbrousseaufx/terraform-azurerm-caf-enterprise-scale/types"
)

func testSettings() types.NormalizedSettings {
	return types.NormalizedSettings{
		Enabled:        true,
		ResourcePrefix: "contoso",
		Ddos:           types.NormalizedDdos{Enabled: true, Location: "eastus"},
		Dns:            types.NormalizedDns{Enabled: true, Location: "eastus"},
	}
}

func TestClient_Assemble_SubnetTemplateStripsLogicOnlyFields(t *testing.T) {
	client := NewClient(logrus.New())
	derived := types.DerivedResources{
		Network: types.NetworkResources{
			Subnets: []types.Subnet{
				{
					Name:                   "workload",
					ResourceID:             "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.Network/virtualNetworks/vnet/subnets/workload",
					ResourceGroupName:      "rg",
					VirtualNetworkName:     "vnet",
					AddressPrefixes:        []string{"10.100.1.0/24"},
					NetworkSecurityGroupID: "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.Network/networkSecurityGroups/nsg1",
					RouteTableID:           "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.Network/routeTables/rt1",
					Managed:                true,
				},
			},
		},
	}

	resources := client.Assemble(testSettings(), derived)

	assert.Len(t, resources.Subnets, 1)
	wantTemplate := map[string]any{
		"name":                 "workload",
		"resource_group_name":  "rg",
		"virtual_network_name": "vnet",
		"address_prefixes":     []string{"10.100.1.0/24"},
	}
	if diff := cmp.Diff(wantTemplate, resources.Subnets[0].Template); diff != "" {
		t.Errorf("subnet template mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_Assemble_UnmanagedResourceHasEmptyTemplate(t *testing.T) {
	client := NewClient(logrus.New())
	derived := types.DerivedResources{
		ResourceGroups: []types.ResourceGroup{
			{
				Scope:      types.ScopeConnectivity,
				Location:   "eastus",
				Name:       "contoso-connectivity-eastus",
				ResourceID: "/subscriptions/sub/resourceGroups/contoso-connectivity-eastus",
				Managed:    false,
			},
		},
	}

	resources := client.Assemble(testSettings(), derived)

	record := resources.ResourceGroups[0]
	assert.False(t, record.ManagedByModule)
	assert.NotNil(t, record.Template)
	assert.Empty(t, record.Template)
	// The ID and name are still populated for referential integrity.
	assert.Equal(t, "/subscriptions/sub/resourceGroups/contoso-connectivity-eastus", record.ResourceID)
	assert.Equal(t, "contoso-connectivity-eastus", record.ResourceName)
}

func TestClient_Assemble_VirtualNetworkOptionalFields(t *testing.T) {
	client := NewClient(logrus.New())
	virtualNetwork := types.VirtualNetwork{
		Name:              "contoso-hub-eastus",
		ResourceID:        "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.Network/virtualNetworks/contoso-hub-eastus",
		ResourceGroupName: "rg",
		Location:          "eastus",
		AddressSpace:      []string{"10.100.0.0/16"},
		Managed:           true,
	}
	derived := types.DerivedResources{Network: types.NetworkResources{VirtualNetworks: []types.VirtualNetwork{virtualNetwork}}}

	resources := client.Assemble(testSettings(), derived)
	template := resources.VirtualNetworks[0].Template
	assert.NotContains(t, template, "dns_servers")
	assert.NotContains(t, template, "bgp_community")
	assert.NotContains(t, template, "ddos_protection_plan")

	virtualNetwork.DnsServers = []string{"10.100.0.4"}
	virtualNetwork.BgpCommunity = "12076:20000"
	virtualNetwork.DdosProtectionPlanID = "/subscriptions/sub/resourceGroups/rg-ddos/providers/Microsoft.Network/ddosProtectionPlans/plan"
	derived.Network.VirtualNetworks = []types.VirtualNetwork{virtualNetwork}

	resources = client.Assemble(testSettings(), derived)
	template = resources.VirtualNetworks[0].Template
	assert.Equal(t, []string{"10.100.0.4"}, template["dns_servers"])
	assert.Equal(t, "12076:20000", template["bgp_community"])
	wantDdos := []map[string]any{{"id": virtualNetwork.DdosProtectionPlanID, "enable": true}}
	if diff := cmp.Diff(wantDdos, template["ddos_protection_plan"]); diff != "" {
		t.Errorf("ddos_protection_plan mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_Assemble_VpnGatewayCarriesBgpFields(t *testing.T) {
	client := NewClient(logrus.New())
	derived := types.DerivedResources{
		Network: types.NetworkResources{
			Gateways: []types.VirtualNetworkGateway{
				{Name: "ergw", Type: types.GatewayTypeExpressRoute, Managed: true},
				{Name: "vpngw", Type: types.GatewayTypeVpn, EnableBgp: true, Managed: true},
			},
		},
	}

	resources := client.Assemble(testSettings(), derived)

	assert.NotContains(t, resources.VirtualNetworkGateways[0].Template, "enable_bgp")
	assert.Equal(t, true, resources.VirtualNetworkGateways[1].Template["enable_bgp"])
	assert.Equal(t, false, resources.VirtualNetworkGateways[1].Template["active_active"])
}

func TestClient_Assemble_ArchetypeConfigOverrides(t *testing.T) {
	client := NewClient(logrus.New())
	derived := types.DerivedResources{
		Network: types.NetworkResources{
			DdosProtectionPlans: []types.DdosProtectionPlan{
				{Name: "plan", ResourceID: "/subscriptions/sub/resourceGroups/rg-ddos/providers/Microsoft.Network/ddosProtectionPlans/plan", Managed: true},
			},
		},
		Dns: types.DnsResources{
			PrivateZones: []types.DnsZone{
				{Name: "privatelink.azurecr.io", ResourceID: "/subscriptions/sub/resourceGroups/rg-dns/providers/Microsoft.Network/privateDnsZones/privatelink.azurecr.io"},
			},
		},
	}

	resources := client.Assemble(testSettings(), derived)

	corp, exists := resources.ArchetypeConfigOverrides["corp"]
	assert.True(t, exists)
	zoneIDs := corp.Parameters["Deploy-Private-DNS-Zones"].(map[string]any)
	assert.Equal(t, derived.Dns.PrivateZones[0].ResourceID, zoneIDs["privatelink.azurecr.io"])

	landingZones, exists := resources.ArchetypeConfigOverrides["landing_zones"]
	assert.True(t, exists)
	ddosParameter := landingZones.Parameters["Enable-DDoS-VNET"].(map[string]any)
	assert.Equal(t, derived.Network.DdosProtectionPlans[0].ResourceID, ddosParameter["ddosPlan"])
}

func TestClient_Assemble_DdosPlanIDEmptyWhenNotDeployed(t *testing.T) {
	client := NewClient(logrus.New())
	settings := testSettings()
	settings.Ddos.Enabled = false
	derived := types.DerivedResources{
		Network: types.NetworkResources{
			DdosProtectionPlans: []types.DdosProtectionPlan{
				{Name: "plan", ResourceID: "/subscriptions/sub/resourceGroups/rg-ddos/providers/Microsoft.Network/ddosProtectionPlans/plan", Managed: false},
			},
		},
	}

	resources := client.Assemble(settings, derived)

	ddosParameter := resources.ArchetypeConfigOverrides["landing_zones"].Parameters["Enable-DDoS-VNET"].(map[string]any)
	assert.Equal(t, "", ddosParameter["ddosPlan"])
}

func TestClient_Assemble_TemplateFileVariables(t *testing.T) {
	client := NewClient(logrus.New())

	resources := client.Assemble(testSettings(), types.DerivedResources{})

	assert.Equal(t, map[string]string{"resource_prefix": "contoso"}, resources.TemplateFileVariables)
}
