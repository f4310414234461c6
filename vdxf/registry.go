package vdxf

import "github.com/forestrie/go-vdxf/wire"

// kindInfo is one row of the key registry. A key with a fixed width is
// written as the bare key and its raw bytes, every other key carries a
// version and a length ahead of its payload.
type kindInfo struct {
	kind       Kind
	key        TypeKey
	name       string
	fixedWidth int
	decode     func(r *wire.Reader) (Payload, error)
}

var registry = []kindInfo{
	{KindByte, DataByteKey, "vrsc::data.type.byte", 1, decodeByte},
	{KindInt16, DataInt16Key, "vrsc::data.type.int16", 2, decodeInt16},
	{KindUint16, DataUint16Key, "vrsc::data.type.uint16", 2, decodeUint16},
	{KindInt32, DataInt32Key, "vrsc::data.type.int32", 4, decodeInt32},
	{KindUint32, DataUint32Key, "vrsc::data.type.uint32", 4, decodeUint32},
	{KindInt64, DataInt64Key, "vrsc::data.type.int64", 8, decodeInt64},
	{KindUint160, DataUint160Key, "vrsc::data.type.uint160", TypeKeyLen, decodeUint160},
	{KindUint256, DataUint256Key, "vrsc::data.type.uint256", 32, decodeUint256},
	{KindString, DataStringKey, "vrsc::data.type.string", 0, decodeString},
	{KindByteVector, DataByteVectorKey, "vrsc::data.type.bytevector", 0, decodeBytes},
	{KindUint256Vector, DataVectorUint256Key, "vrsc::data.type.vector.uint256", 0, decodeUint256Vector},
	{KindCurrencyValueMap, DataCurrencyMapKey, "vrsc::data.type.object.currencymap", 0, decodeCurrencyValueMap},
	{KindRating, DataRatingsKey, "vrsc::data.type.object.ratings", 0, decodeRating},
	{KindTransferDestination, DataTransferDestinationKey, "vrsc::data.type.object.transferdestination", 0, decodeTransferDestination},
	{KindContentMultiMapRemove, DataContentMultiMapRemoveKey, "vrsc::data.type.object.contentmultimapremove", 0, decodeContentMultiMapRemove},
	{KindCrossChainDataRef, DataCrossChainDataRefKey, "vrsc::data.type.object.crosschaindataref", 0, decodeCrossChainDataRef},
	{KindDataDescriptor, DataDescriptorKey, "vrsc::data.type.object.datadescriptor", 0, decodeDataDescriptor},
	{KindMMRDescriptor, DataMMRDescriptorKey, "vrsc::data.type.object.mmrdescriptor", 0, decodeMMRDescriptor},
	{KindSignatureData, DataSignatureDataKey, "vrsc::data.type.object.signaturedata", 0, decodeSignatureData},
}

// The decoders above reach back into the registry, so lookups go through
// these maps, filled by init, never through registry itself.
var (
	registryByKey  = map[TypeKey]*kindInfo{}
	registryByKind = map[Kind]*kindInfo{}
	registryByName = map[string]*kindInfo{}
)

func init() {
	for i := range registry {
		info := &registry[i]
		registryByKey[info.key] = info
		registryByKind[info.kind] = info
		registryByName[info.name] = info
	}
}

// KeyForKind returns the key registered for a payload kind.
func KeyForKind(k Kind) (TypeKey, bool) {
	info, ok := registryByKind[k]
	if !ok {
		return TypeKey{}, false
	}
	return info.key, true
}

// KindForKey returns the payload kind registered for key.
func KindForKey(key TypeKey) (Kind, bool) {
	info, ok := registryByKey[key]
	if !ok {
		return KindOpaque, false
	}
	return info.kind, true
}
