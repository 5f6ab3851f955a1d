// SPDX-License-Identifier: Apache-2.0

package ogc

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/registry"
)

type featureAttribute struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type featureInfo struct {
	Type                 string             `json:"type"`
	ObjectID             string             `json:"objectId"`
	FeatureID            string             `json:"featureId"`
	FeatureAttributeList []featureAttribute `json:"featureAttributeList"`
}

type featureInfoList struct {
	Type                  string        `json:"type"`
	TotalFeatureInfoCount int           `json:"totalFeatureInfoCount"`
	FeatureInfos          []featureInfo `json:"featureInfos"`
}

func (d *Dispatcher) getFeatureInfoByObjectID(ctx context.Context, params Params, m registry.Model) Response {
	objectID := params.Get("objectId")
	if objectID == "" {
		return NewException(Version3DPS, CodeMissingParameterValue, "objectId", "missing objectId parameter")
	}
	format := params.Get("format")
	if format == "" {
		return NewException(Version3DPS, CodeMissingParameterValue, "format", "missing format parameter")
	}
	if format != ContentTypeJSON {
		return NewException(Version3DPS, CodeInvalidParameterValue, "format",
			"only "+ContentTypeJSON+" is supported")
	}
	layers := params.Get("layers")
	if layers == "" {
		return NewException(Version3DPS, CodeMissingParameterValue, "layers", "missing layers parameter")
	}
	if layers != LayerName {
		return NewException(Version3DPS, CodeInvalidParameterValue, "layers",
			"unknown layer "+layers)
	}

	groups, err := d.attrs.QueryAttributes(ctx, m.Name, objectID)
	if err != nil {
		// legacy degrade-safe behavior: a blank body, never an exception
		d.logger.Warn("attribute query failed",
			zap.String("model", m.Name), zap.String("objectId", objectID), zap.Error(err))
		return BlankResponse()
	}

	merged := groups.Flatten()
	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make([]featureAttribute, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, featureAttribute{Type: "FeatureAttribute", Name: name, Value: merged[name]})
	}

	return JSONResponse(featureInfoList{
		Type:                  "FeatureInfoList",
		TotalFeatureInfoCount: 1,
		FeatureInfos: []featureInfo{
			{
				Type:                 "FeatureInfo",
				ObjectID:             objectID,
				FeatureID:            objectID,
				FeatureAttributeList: attrs,
			},
		},
	})
}
