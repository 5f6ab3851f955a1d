// SPDX-License-Identifier: Apache-2.0

package ogc

import (
	"bytes"
	"text/template"

	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/registry"
)

// capabilitiesTemplate is the fixed-structure 3DPS capabilities document,
// parameterized only by model name and CRS.
var capabilitiesTemplate = template.Must(template.New("capabilities").Parse(`<?xml version="1.0" encoding="UTF-8"?>
<Capabilities xmlns="http://www.opengis.net/3dps/1.0/core"
    xmlns:ows="http://www.opengis.net/ows/2.0"
    xmlns:xlink="http://www.w3.org/1999/xlink" version="1.0">
  <ows:ServiceIdentification>
    <ows:Title>3D Portrayal Server, geological model {{.Name}}</ows:Title>
    <ows:ServiceType>3DPS</ows:ServiceType>
    <ows:ServiceTypeVersion>1.0</ows:ServiceTypeVersion>
    <ows:Profile>http://www.opengis.net/spec/3DPS/1.0/extension/scene/1.0</ows:Profile>
  </ows:ServiceIdentification>
  <ows:OperationsMetadata>
    <ows:Operation name="GetCapabilities"/>
    <ows:Operation name="GetFeatureInfoByObjectId"/>
    <ows:Operation name="GetResourceById"/>
  </ows:OperationsMetadata>
  <Contents>
    <Layer>
      <ows:Identifier>{{.LayerName}}</ows:Identifier>
      <ows:Title>NVCL Boreholes</ows:Title>
      <AvailableCRS>{{.CRS}}</AvailableCRS>
    </Layer>
  </Contents>
</Capabilities>
`))

type capabilitiesData struct {
	Name      string
	CRS       string
	LayerName string
}

// getCapabilities always succeeds for a registered model; the version
// parameter is ignored.
func (d *Dispatcher) getCapabilities(m registry.Model) Response {
	var buf bytes.Buffer
	err := capabilitiesTemplate.Execute(&buf, capabilitiesData{
		Name:      m.Name,
		CRS:       m.CRS,
		LayerName: LayerName,
	})
	if err != nil {
		d.logger.Error("failed rendering capabilities document", zap.String("model", m.Name), zap.Error(err))
		return BlankResponse()
	}
	return Response{ContentType: ContentTypeXML, Body: buf.Bytes()}
}
