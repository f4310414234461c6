package vdxf

import (
	"github.com/forestrie/go-vdxf/address"
)

// TypeKey names the kind of a Universal Value entry. It is the VDXF id of a
// qualified name such as vrsc::data.type.string.
type TypeKey = address.Hash160

const TypeKeyLen = address.Hash160Len

// Well known data type keys, derived once from their qualified names.
var (
	DataByteKey                  = address.DataKey("vrsc::data.type.byte")
	DataInt16Key                 = address.DataKey("vrsc::data.type.int16")
	DataUint16Key                = address.DataKey("vrsc::data.type.uint16")
	DataInt32Key                 = address.DataKey("vrsc::data.type.int32")
	DataUint32Key                = address.DataKey("vrsc::data.type.uint32")
	DataInt64Key                 = address.DataKey("vrsc::data.type.int64")
	DataUint160Key               = address.DataKey("vrsc::data.type.uint160")
	DataUint256Key               = address.DataKey("vrsc::data.type.uint256")
	DataStringKey                = address.DataKey("vrsc::data.type.string")
	DataByteVectorKey            = address.DataKey("vrsc::data.type.bytevector")
	DataVectorUint256Key         = address.DataKey("vrsc::data.type.vector.uint256")
	DataCurrencyMapKey           = address.DataKey("vrsc::data.type.object.currencymap")
	DataRatingsKey               = address.DataKey("vrsc::data.type.object.ratings")
	DataTransferDestinationKey   = address.DataKey("vrsc::data.type.object.transferdestination")
	DataContentMultiMapRemoveKey = address.DataKey("vrsc::data.type.object.contentmultimapremove")
	DataCrossChainDataRefKey     = address.DataKey("vrsc::data.type.object.crosschaindataref")
	DataDescriptorKey            = address.DataKey("vrsc::data.type.object.datadescriptor")
	DataMMRDescriptorKey         = address.DataKey("vrsc::data.type.object.mmrdescriptor")
	DataSignatureDataKey         = address.DataKey("vrsc::data.type.object.signaturedata")
)

// LookupKeyName returns the qualified name of a catalogued key.
func LookupKeyName(key TypeKey) (string, bool) {
	info, ok := registryByKey[key]
	if !ok {
		return "", false
	}
	return info.name, true
}

// KeyForName returns the key of a catalogued qualified name.
func KeyForName(name string) (TypeKey, bool) {
	info, ok := registryByName[name]
	if !ok {
		return TypeKey{}, false
	}
	return info.key, true
}
