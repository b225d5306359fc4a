package dns

import (
	"sort"
	"strings"
)

// locationToken marks zone names that are templated per private link
// location, e.g. privatelink.${location}.azmk8s.io.
const locationToken = "${location}"

// serviceZones maps a private link service name to the private DNS zone
// FQDNs it resolves through. The table is static; its inverse index is built
// once at package init.
var serviceZones = map[string][]string{
	"azure_api_management":                 {"privatelink.azure-api.net"},
	"azure_app_configuration_stores":       {"privatelink.azconfig.io"},
	"azure_arc":                            {"privatelink.his.arc.azure.com", "privatelink.guestconfiguration.azure.com"},
	"azure_automation_dscandhybridworker":  {"privatelink.azure-automation.net"},
	"azure_automation_webhook":             {"privatelink.azure-automation.net"},
	"azure_batch_account":                  {"privatelink.${location}.batch.azure.com"},
	"azure_bot_service_bot":                {"privatelink.directline.botframework.com"},
	"azure_bot_service_token":              {"privatelink.token.botframework.com"},
	"azure_cache_for_redis":                {"privatelink.redis.cache.windows.net"},
	"azure_cache_for_redis_enterprise":     {"privatelink.redisenterprise.cache.azure.net"},
	"azure_container_registry":             {"privatelink.azurecr.io"},
	"azure_cosmos_db_cassandra":            {"privatelink.cassandra.cosmos.azure.com"},
	"azure_cosmos_db_gremlin":              {"privatelink.gremlin.cosmos.azure.com"},
	"azure_cosmos_db_mongodb":              {"privatelink.mongo.cosmos.azure.com"},
	"azure_cosmos_db_sql":                  {"privatelink.documents.azure.com"},
	"azure_cosmos_db_table":                {"privatelink.table.cosmos.azure.com"},
	"azure_data_explorer":                  {"privatelink.${location}.kusto.windows.net"},
	"azure_data_factory":                   {"privatelink.datafactory.azure.net"},
	"azure_data_factory_portal":            {"privatelink.adf.azure.com"},
	"azure_data_lake_file_system_gen2":     {"privatelink.dfs.core.windows.net"},
	"azure_database_for_mariadb_server":    {"privatelink.mariadb.database.azure.com"},
	"azure_database_for_mysql_server":      {"privatelink.mysql.database.azure.com"},
	"azure_database_for_postgresql_server": {"privatelink.postgres.database.azure.com"},
	"azure_digital_twins":                  {"privatelink.digitaltwins.azure.net"},
	"azure_event_grid_domain":              {"privatelink.eventgrid.azure.net"},
	"azure_event_grid_topic":               {"privatelink.eventgrid.azure.net"},
	"azure_event_hubs_namespace":           {"privatelink.servicebus.windows.net"},
	"azure_file_sync":                      {"privatelink.afs.azure.net"},
	"azure_hdinsights":                     {"privatelink.azurehdinsight.net"},
	"azure_iot_dps":                        {"privatelink.azure-devices-provisioning.net"},
	"azure_iot_hub":                        {"privatelink.azure-devices.net", "privatelink.servicebus.windows.net"},
	"azure_key_vault":                      {"privatelink.vaultcore.azure.net"},
	"azure_key_vault_managed_hsm":          {"privatelink.managedhsm.azure.net"},
	"azure_kubernetes_service_management":  {"privatelink.${location}.azmk8s.io"},
	"azure_machine_learning_workspace":     {"privatelink.api.azureml.ms", "privatelink.notebooks.azure.net"},
	"azure_managed_disks":                  {"privatelink.blob.core.windows.net"},
	"azure_media_services":                 {"privatelink.media.azure.net"},
	"azure_migrate":                        {"privatelink.prod.migration.windowsazure.com"},
	"azure_monitor":                        {"privatelink.monitor.azure.com", "privatelink.oms.opinsights.azure.com", "privatelink.ods.opinsights.azure.com", "privatelink.agentsvc.azure-automation.net"},
	"azure_purview_account":                {"privatelink.purview.azure.com"},
	"azure_purview_studio":                 {"privatelink.purviewstudio.azure.com"},
	"azure_relay_namespace":                {"privatelink.servicebus.windows.net"},
	"azure_search_service":                 {"privatelink.search.windows.net"},
	"azure_service_bus_namespace":          {"privatelink.servicebus.windows.net"},
	"azure_site_recovery":                  {"privatelink.siterecovery.windowsazure.com"},
	"azure_sql_database_sqlserver":         {"privatelink.database.windows.net"},
	"azure_synapse_analytics_dev":          {"privatelink.dev.azuresynapse.net"},
	"azure_synapse_analytics_sql":          {"privatelink.sql.azuresynapse.net"},
	"azure_synapse_studio":                 {"privatelink.azuresynapse.net"},
	"azure_web_apps_sites":                 {"privatelink.azurewebsites.net"},
	"azure_web_apps_static_sites":          {"privatelink.azurestaticapps.net"},
	"cognitive_services_account":           {"privatelink.cognitiveservices.azure.com"},
	"signalr":                              {"privatelink.service.signalr.net"},
	"signalr_webpubsub":                    {"privatelink.webpubsub.azure.com"},
	"storage_account_blob":                 {"privatelink.blob.core.windows.net"},
	"storage_account_file":                 {"privatelink.file.core.windows.net"},
	"storage_account_queue":                {"privatelink.queue.core.windows.net"},
	"storage_account_table":                {"privatelink.table.core.windows.net"},
	"storage_account_web":                  {"privatelink.web.core.windows.net"},
}

// zoneServices is the inverse index: zone FQDN (unexpanded) to the sorted
// list of services owning it. A zone is deployed when any owning service is
// enabled.
var zoneServices = map[string][]string{}

func init() {
	for serviceName, zoneNames := range serviceZones {
		for _, zoneName := range zoneNames {
			zoneServices[zoneName] = append(zoneServices[zoneName], serviceName)
		}
	}
	for _, serviceNames := range zoneServices {
		sort.Strings(serviceNames)
	}
}

func IsKnownService(serviceName string) bool {
	_, exists := serviceZones[serviceName]
	return exists
}

// ServiceNames returns the known private link service names in sorted order.
func ServiceNames() []string {
	serviceNames := make([]string, 0, len(serviceZones))
	for serviceName := range serviceZones {
		serviceNames = append(serviceNames, serviceName)
	}
	sort.Strings(serviceNames)
	return serviceNames
}

// ZoneNames returns the unexpanded zone FQDNs from the table in sorted order.
func ZoneNames() []string {
	zoneNames := make([]string, 0, len(zoneServices))
	for zoneName := range zoneServices {
		zoneNames = append(zoneNames, zoneName)
	}
	sort.Strings(zoneNames)
	return zoneNames
}

// ExpandZoneName substitutes the location token, returning the zone FQDN for
// one private link location. Names without the token are returned unchanged.
func ExpandZoneName(zoneName string, location string) string {
	return strings.ReplaceAll(zoneName, locationToken, location)
}

// HasLocationToken reports whether a zone name is templated per location.
func HasLocationToken(zoneName string) bool {
	return strings.Contains(zoneName, locationToken)
}
